package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrE-Fog/grindery-delight-api/internal/api/handlers"
)

func NewRouter(handler *handlers.Handler) http.Handler {
	router := gin.Default()
	router.Use(CORSMiddleware())

	v1 := router.Group("/api/v1")

	v1.GET("/health", handler.Ping)

	// User routes, bearer-token identity
	user := v1.Group("")
	user.Use(UserAuthentication())
	{
		user.GET("/ws", handler.Listen)

		user.POST("/orders", handler.CreateOrder)
		user.GET("/orders/user", handler.GetOrdersByUser)
		user.GET("/orders/liquidity-provider", handler.GetOrdersByLiquidityProvider)
		user.GET("/orders/orderId", handler.GetOrderByOrderID)
		user.GET("/orders/id", handler.GetOrderByID)
		user.PUT("/orders/complete", handler.CompleteOrder)
		user.DELETE("/orders/:orderId", handler.DeleteOrder)

		user.POST("/offers", handler.CreateOffer)
		user.GET("/offers", handler.GetActiveOffers)
		user.GET("/offers/user", handler.GetOffersByUser)
		user.GET("/offers/offerId", handler.GetOfferByOfferID)
		user.DELETE("/offers/:offerId", handler.DeleteOffer)

		user.POST("/blockchains", handler.CreateBlockchain)
		user.GET("/blockchains", handler.GetBlockchains)
		user.GET("/blockchains/:id", handler.GetBlockchainByID)
		user.DELETE("/blockchains/:id", handler.DeleteBlockchain)
		user.POST("/blockchains/:id/useful-address", handler.UpsertUsefulAddress)
		user.DELETE("/blockchains/:id/useful-address", handler.DeleteUsefulAddress)

		user.POST("/liquidity-wallets", handler.UpsertLiquidityWallet)
		user.GET("/liquidity-wallets", handler.GetLiquidityWallets)
		user.DELETE("/liquidity-wallets", handler.DeleteLiquidityWallet)
	}

	// Webhook routes, API-key identity of the settlement process
	webhook := v1.Group("/webhook")
	webhook.Use(APIKeyAuthentication())
	{
		webhook.PUT("/order", handler.WebhookOrderSuccess)
		webhook.PUT("/order/failure", handler.WebhookOrderFailure)
		webhook.PUT("/order/completion-failure", handler.WebhookOrderCompletionFailure)

		webhook.PUT("/offer/max-price", handler.WebhookOfferMaxPrice)
		webhook.PUT("/offer/min-price", handler.WebhookOfferMinPrice)
		webhook.PUT("/offer/token", handler.WebhookOfferToken)
		webhook.PUT("/offer/chain", handler.WebhookOfferChain)
		webhook.PUT("/offer/activation", handler.WebhookOfferActivation)
		webhook.PUT("/offer/offer-id", handler.WebhookOfferAssignID)
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"message": "Method Not Allowed",
		})
	})

	return router
}
