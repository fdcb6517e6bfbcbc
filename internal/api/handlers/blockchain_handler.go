package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

func (h *Handler) CreateBlockchain(ctx *gin.Context) {
	if _, ok := userID(ctx); !ok {
		return
	}
	req, ok := validateRequest(ctx, createBlockchainRules, createBlockchainAllowed)
	if !ok {
		return
	}
	chainReq := BlockchainRequest{}
	if !bindBody(ctx, req, &chainReq) {
		return
	}
	chain := database.Blockchain{
		CaipID:                 chainReq.CaipID,
		ChainID:                chainReq.ChainID,
		Label:                  chainReq.Label,
		Icon:                   chainReq.Icon,
		RPC:                    chainReq.RPC,
		NativeTokenSymbol:      chainReq.NativeTokenSymbol,
		IsEvm:                  chainReq.IsEvm,
		IsTestnet:              chainReq.IsTestnet,
		IsActive:               chainReq.IsActive,
		TransactionExplorerUrl: chainReq.TransactionExplorerUrl,
		AddressExplorerUrl:     chainReq.AddressExplorerUrl,
		UsefulAddresses:        chainReq.UsefulAddresses,
	}
	insertedID, err := h.Engine.CreateBlockchain(ctx, &chain)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": insertedID})
}

func (h *Handler) GetBlockchains(ctx *gin.Context) {
	req, ok := validateRequest(ctx, blockchainsRules, blockchainsAllowed)
	if !ok {
		return
	}
	all := boolQuery(req, "all")
	activeOnly := all == nil || !*all
	chains, err := h.Engine.Blockchains(ctx, activeOnly)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chains)
}

func (h *Handler) GetBlockchainByID(ctx *gin.Context) {
	if _, ok := validateRequest(ctx, blockchainIDRules, blockchainIDAllowed); !ok {
		return
	}
	chain, err := h.Engine.GetBlockchain(ctx, ctx.Param("id"))
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	if chain == nil {
		ctx.JSON(http.StatusOK, gin.H{})
		return
	}
	ctx.JSON(http.StatusOK, chain)
}

// DeleteBlockchain answers 200 with the deleted count even when nothing
// matched; only a malformed id is an error.
func (h *Handler) DeleteBlockchain(ctx *gin.Context) {
	if _, ok := validateRequest(ctx, blockchainIDRules, blockchainIDAllowed); !ok {
		return
	}
	deleted, err := h.Engine.DeleteBlockchain(ctx, ctx.Param("id"))
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": deleted})
}

func (h *Handler) UpsertUsefulAddress(ctx *gin.Context) {
	if _, ok := userID(ctx); !ok {
		return
	}
	req, ok := validateRequest(ctx, upsertUsefulAddressRules, upsertUsefulAddressAllowed)
	if !ok {
		return
	}
	addressReq := UsefulAddressRequest{}
	if !bindBody(ctx, req, &addressReq) {
		return
	}
	err := h.Engine.UpsertUsefulAddress(ctx, ctx.Param("id"), addressReq.Contract, addressReq.Address)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

func (h *Handler) DeleteUsefulAddress(ctx *gin.Context) {
	if _, ok := userID(ctx); !ok {
		return
	}
	req, ok := validateRequest(ctx, deleteUsefulAddressRules, deleteUsefulAddressAllowed)
	if !ok {
		return
	}
	addressReq := UsefulAddressRequest{}
	if !bindBody(ctx, req, &addressReq) {
		return
	}
	err := h.Engine.DeleteUsefulAddress(ctx, ctx.Param("id"), addressReq.Contract)
	if err != nil {
		handleEngineError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"acknowledged": true})
}
