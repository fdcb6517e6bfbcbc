package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrE-Fog/grindery-delight-api/internal/config"
)

const BearerPrefix = "Bearer"

func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	})
}

// UserAuthentication verifies the bearer token and stores the caller
// identity under "userId". Every failure is a bare 403; callers get no
// detail about why.
func UserAuthentication() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, BearerPrefix+" ") {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		tokenString := authHeader[len(BearerPrefix)+1:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv(config.EnvDltJwtSecret)), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		ctx.Set("userId", sub)
		ctx.Next()
	}
}

// APIKeyAuthentication guards the webhook surface. The settlement process
// sends its key in X-API-KEY; only a bcrypt hash of it is kept in the
// environment.
func APIKeyAuthentication() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.GetHeader("X-API-KEY")
		hash := os.Getenv(config.EnvDltApiKeyHash)
		if key == "" || hash == "" {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		ctx.Next()
	}
}
