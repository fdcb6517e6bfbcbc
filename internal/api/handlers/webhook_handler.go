package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/validation"
)

// Webhook handlers are called by the external settlement process with its
// API key. Each applies one state transition; a missing record is a 404 and
// nothing is updated or dispatched.

func (h *Handler) WebhookOrderSuccess(ctx *gin.Context) {
	req, ok := validateRequest(ctx, webhookOrderRules, webhookOrderAllowed)
	if !ok {
		return
	}
	orderReq := WebhookOrderRequest{}
	if !bindBody(ctx, req, &orderReq) {
		return
	}
	if err := h.Engine.OrderSuccess(ctx, orderReq.Hash, orderReq.OrderID); err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) WebhookOrderFailure(ctx *gin.Context) {
	req, ok := validateRequest(ctx, webhookOrderHashRules, webhookOrderHashAllowed)
	if !ok {
		return
	}
	orderReq := WebhookOrderRequest{}
	if !bindBody(ctx, req, &orderReq) {
		return
	}
	if err := h.Engine.OrderFailure(ctx, orderReq.Hash); err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) WebhookOrderCompletionFailure(ctx *gin.Context) {
	req, ok := validateRequest(ctx, webhookOrderHashRules, webhookOrderHashAllowed)
	if !ok {
		return
	}
	orderReq := WebhookOrderRequest{}
	if !bindBody(ctx, req, &orderReq) {
		return
	}
	if err := h.Engine.OrderCompletionFailure(ctx, orderReq.Hash); err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) WebhookOfferMaxPrice(ctx *gin.Context) {
	h.webhookOfferField(ctx, "max", validation.IsNumeric, func(offerReq *WebhookOfferRequest) error {
		var max float64
		if offerReq.Max != nil {
			max = *offerReq.Max
		}
		return h.Engine.SetOfferMaxPrice(ctx, offerReq.OfferID, max)
	})
}

func (h *Handler) WebhookOfferMinPrice(ctx *gin.Context) {
	h.webhookOfferField(ctx, "min", validation.IsNumeric, func(offerReq *WebhookOfferRequest) error {
		var min float64
		if offerReq.Min != nil {
			min = *offerReq.Min
		}
		return h.Engine.SetOfferMinPrice(ctx, offerReq.OfferID, min)
	})
}

func (h *Handler) WebhookOfferToken(ctx *gin.Context) {
	h.webhookOfferField(ctx, "token", validation.IsString, func(offerReq *WebhookOfferRequest) error {
		return h.Engine.SetOfferToken(ctx, offerReq.OfferID, offerReq.Token)
	})
}

func (h *Handler) WebhookOfferChain(ctx *gin.Context) {
	h.webhookOfferField(ctx, "chainId", validation.IsString, func(offerReq *WebhookOfferRequest) error {
		return h.Engine.SetOfferChain(ctx, offerReq.OfferID, offerReq.ChainID)
	})
}

func (h *Handler) WebhookOfferActivation(ctx *gin.Context) {
	h.webhookOfferField(ctx, "isActive", validation.IsBoolean, func(offerReq *WebhookOfferRequest) error {
		var isActive bool
		if offerReq.IsActive != nil {
			isActive = *offerReq.IsActive
		}
		return h.Engine.SetOfferActivation(ctx, offerReq.OfferID, isActive)
	})
}

func (h *Handler) webhookOfferField(ctx *gin.Context, valueField string, kind validation.Kind, apply func(*WebhookOfferRequest) error) {
	req, ok := validateRequest(ctx, webhookOfferRules(valueField, kind), webhookOfferAllowed(valueField))
	if !ok {
		return
	}
	offerReq := WebhookOfferRequest{}
	if !bindBody(ctx, req, &offerReq) {
		return
	}
	if err := apply(&offerReq); err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) WebhookOfferAssignID(ctx *gin.Context) {
	req, ok := validateRequest(ctx, webhookOfferAssignRules, webhookOfferAssignAllowed)
	if !ok {
		return
	}
	assignReq := WebhookOfferAssignRequest{}
	if !bindBody(ctx, req, &assignReq) {
		return
	}
	if err := h.Engine.AssignOfferID(ctx, assignReq.Hash, assignReq.OfferID, assignReq.Status); err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}
