package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpsertLiquidityWallet(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, upsertWalletRules, upsertWalletAllowed)
	if !ok {
		return
	}
	walletReq := WalletRequest{}
	if !bindBody(ctx, req, &walletReq) {
		return
	}
	err := h.Engine.UpsertWalletToken(ctx, uid, walletReq.WalletAddress, walletReq.ChainID, walletReq.TokenID, walletReq.Amount)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) GetLiquidityWallets(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, walletsRules, walletsAllowed)
	if !ok {
		return
	}
	chainID, _ := req.Query["chainId"].(string)
	wallets, err := h.Engine.WalletsByChain(ctx, uid, chainID)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, wallets)
}

func (h *Handler) DeleteLiquidityWallet(ctx *gin.Context) {
	uid, ok := userID(ctx)
	if !ok {
		return
	}
	req, ok := validateRequest(ctx, deleteWalletRules, deleteWalletAllowed)
	if !ok {
		return
	}
	walletReq := WalletRequest{}
	if !bindBody(ctx, req, &walletReq) {
		return
	}
	err := h.Engine.DeleteWallet(ctx, uid, walletReq.WalletAddress, walletReq.ChainID)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}
