package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

func (h *Handler) CreateOffer(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, createOfferRules, createOfferAllowed)
	if !ok {
		return
	}
	offerReq := OfferRequest{}
	if !bindBody(ctx, req, &offerReq) {
		return
	}
	offer := database.Offer{
		ChainID:         offerReq.ChainID,
		Min:             offerReq.Min,
		Max:             offerReq.Max,
		TokenID:         offerReq.TokenID,
		Token:           offerReq.Token,
		TokenAddress:    offerReq.TokenAddress,
		Hash:            offerReq.Hash,
		ExchangeRate:    offerReq.ExchangeRate,
		ExchangeToken:   offerReq.ExchangeToken,
		ExchangeChainID: offerReq.ExchangeChainID,
		EstimatedTime:   offerReq.EstimatedTime,
	}
	insertedID, err := h.Engine.CreateOffer(ctx, uid, &offer)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": insertedID})
}

func (h *Handler) GetActiveOffers(ctx *gin.Context) {
	req, ok := validateRequest(ctx, paginationRules, offersAllowed)
	if !ok {
		return
	}
	offset, limit := pagination(req)
	offers, err := h.Engine.ActiveOffers(ctx, offset, limit)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, offers)
}

func (h *Handler) GetOffersByUser(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, offersByUserRules, offersByUserAllowed)
	if !ok {
		return
	}
	offers, err := h.Engine.OffersByUser(ctx, uid, boolQuery(req, "isActive"))
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, offers)
}

func (h *Handler) GetOfferByOfferID(ctx *gin.Context) {
	req, ok := validateRequest(ctx, offerByOfferIDRules, offerByOfferIDAllowed)
	if !ok {
		return
	}
	offerID, _ := req.Query["offerId"].(string)
	offer, err := h.Engine.GetOffer(ctx, offerID)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	if offer == nil {
		ctx.JSON(http.StatusOK, gin.H{})
		return
	}
	ctx.JSON(http.StatusOK, offer)
}

func (h *Handler) DeleteOffer(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	if _, ok := validateRequest(ctx, deleteOfferRules, deleteOfferAllowed); !ok {
		return
	}
	err := h.Engine.DeleteOffer(ctx, uid, ctx.Param("offerId"))
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}
