package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderCollection           = "orders"
	OfferCollection           = "offers"
	BlockchainCollection      = "blockchains"
	LiquidityWalletCollection = "liquidity-wallets"

	OrderStatusPending           = "pending"
	OrderStatusSuccess           = "success"
	OrderStatusCompletion        = "completion"
	OrderStatusFailure           = "failure"
	OrderStatusCompletionFailure = "completionFailure"

	OfferStatusPending = "pending"
	OfferStatusSuccess = "success"
	OfferStatusFailure = "failure"
)

// Order field names are the wire contract and must not change.
type Order struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID             string             `json:"orderId" bson:"orderId"`
	UserID              string             `json:"userId" bson:"userId"`
	OfferID             string             `json:"offerId" bson:"offerId"`
	AmountTokenDeposit  float64            `json:"amountTokenDeposit" bson:"amountTokenDeposit"`
	AddressTokenDeposit string             `json:"addressTokenDeposit" bson:"addressTokenDeposit"`
	ChainIDTokenDeposit string             `json:"chainIdTokenDeposit" bson:"chainIdTokenDeposit"`
	DestAddr            string             `json:"destAddr" bson:"destAddr"`
	AmountTokenOffer    float64            `json:"amountTokenOffer" bson:"amountTokenOffer"`
	Hash                string             `json:"hash" bson:"hash"`
	Status              string             `json:"status" bson:"status"`
	IsComplete          bool               `json:"isComplete" bson:"isComplete"`
	CompletionHash      string             `json:"completionHash,omitempty" bson:"completionHash,omitempty"`
	Date                time.Time          `json:"date" bson:"date"`
}

type Offer struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OfferID         string             `json:"offerId" bson:"offerId"`
	UserID          string             `json:"userId" bson:"userId"`
	ChainID         string             `json:"chainId" bson:"chainId"`
	Min             float64            `json:"min" bson:"min"`
	Max             float64            `json:"max" bson:"max"`
	TokenID         string             `json:"tokenId" bson:"tokenId"`
	Token           string             `json:"token" bson:"token"`
	TokenAddress    string             `json:"tokenAddress" bson:"tokenAddress"`
	Hash            string             `json:"hash" bson:"hash"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	ExchangeRate    float64            `json:"exchangeRate" bson:"exchangeRate"`
	ExchangeToken   string             `json:"exchangeToken" bson:"exchangeToken"`
	ExchangeChainID string             `json:"exchangeChainId" bson:"exchangeChainId"`
	EstimatedTime   float64            `json:"estimatedTime" bson:"estimatedTime"`
	Status          string             `json:"status" bson:"status"`
	Date            time.Time          `json:"date" bson:"date"`
}

type Blockchain struct {
	ID                     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CaipID                 string             `json:"caipId" bson:"caipId"`
	ChainID                string             `json:"chainId" bson:"chainId"`
	Label                  string             `json:"label" bson:"label"`
	Icon                   string             `json:"icon" bson:"icon"`
	RPC                    []string           `json:"rpc" bson:"rpc"`
	NativeTokenSymbol      string             `json:"nativeTokenSymbol" bson:"nativeTokenSymbol"`
	IsEvm                  bool               `json:"isEvm" bson:"isEvm"`
	IsTestnet              bool               `json:"isTestnet" bson:"isTestnet"`
	IsActive               bool               `json:"isActive" bson:"isActive"`
	TransactionExplorerUrl string             `json:"transactionExplorerUrl" bson:"transactionExplorerUrl"`
	AddressExplorerUrl     string             `json:"addressExplorerUrl" bson:"addressExplorerUrl"`
	UsefulAddresses        map[string]string  `json:"usefulAddresses" bson:"usefulAddresses"`
}

type LiquidityWallet struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	WalletAddress string             `json:"walletAddress" bson:"walletAddress"`
	ChainID       string             `json:"chainId" bson:"chainId"`
	UserID        string             `json:"userId" bson:"userId"`
	Tokens        map[string]float64 `json:"tokens" bson:"tokens"`
}

// UpdateOutcome mirrors the store's update result counters. Matched without
// Modified means the update was a no-op against an already-current record.
type UpdateOutcome struct {
	Matched  int64
	Modified int64
}
