package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/lifecycle"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/notify"
)

type Handler struct {
	Engine *lifecycle.Engine
	Hub    *notify.Hub
}

func NewHandler(engine *lifecycle.Engine, hub *notify.Hub) *Handler {
	return &Handler{
		Engine: engine,
		Hub:    hub,
	}
}

func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"msg": "pong"})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Listen upgrades the connection and attaches it to the notification hub.
func (h *Handler) Listen(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Errorf("websocket upgrade: %v", err)
		return
	}
	h.Hub.Attach(conn)
}
