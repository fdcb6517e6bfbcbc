package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

func (h *Handler) CreateOrder(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, createOrderRules, createOrderAllowed)
	if !ok {
		return
	}
	orderReq := OrderRequest{}
	if !bindBody(ctx, req, &orderReq) {
		return
	}
	order := database.Order{
		OrderID:             orderReq.OrderID,
		OfferID:             orderReq.OfferID,
		AmountTokenDeposit:  orderReq.AmountTokenDeposit,
		AddressTokenDeposit: orderReq.AddressTokenDeposit,
		ChainIDTokenDeposit: orderReq.ChainIDTokenDeposit,
		DestAddr:            orderReq.DestAddr,
		AmountTokenOffer:    orderReq.AmountTokenOffer,
		Hash:                orderReq.Hash,
	}
	insertedID, err := h.Engine.CreateOrder(ctx, uid, &order)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": insertedID})
}

func (h *Handler) GetOrdersByUser(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, paginationRules, ordersByUserAllowed)
	if !ok {
		return
	}
	offset, limit := pagination(req)
	orders, err := h.Engine.OrdersByUser(ctx, uid, offset, limit)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrdersByLiquidityProvider(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, ordersByProviderRules, ordersByProviderAllowed)
	if !ok {
		return
	}
	offset, limit := pagination(req)
	active := boolQuery(req, "isActive")
	orders, err := h.Engine.OrdersByLiquidityProvider(ctx, uid, active, offset, limit)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrderByOrderID(ctx *gin.Context) {
	req, ok := validateRequest(ctx, orderByOrderIDRules, orderByOrderIDAllowed)
	if !ok {
		return
	}
	orderID, _ := req.Query["orderId"].(string)
	order, err := h.Engine.GetOrder(ctx, orderID)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	if order == nil {
		ctx.JSON(http.StatusOK, gin.H{})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

func (h *Handler) GetOrderByID(ctx *gin.Context) {
	req, ok := validateRequest(ctx, orderByIDRules, orderByIDAllowed)
	if !ok {
		return
	}
	id, _ := req.Query["id"].(string)
	order, err := h.Engine.GetOrderByID(ctx, id)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	if order == nil {
		ctx.JSON(http.StatusOK, gin.H{})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

func (h *Handler) CompleteOrder(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, completeOrderRules, completeOrderAllowed)
	if !ok {
		return
	}
	completeReq := CompleteOrderRequest{}
	if !bindBody(ctx, req, &completeReq) {
		return
	}
	err := h.Engine.CompleteOrder(ctx, uid, completeReq.OrderID, completeReq.CompletionHash)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) DeleteOrder(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	if _, ok := validateRequest(ctx, deleteOrderRules, deleteOrderAllowed); !ok {
		return
	}
	err := h.Engine.DeleteOrder(ctx, uid, ctx.Param("orderId"))
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}
