package handlers

// Typed request bodies, bound only after the validation gate has passed.
// userId never appears here: ownership always comes from the bearer token.

type OrderRequest struct {
	OrderID             string  `json:"orderId"`
	OfferID             string  `json:"offerId"`
	AmountTokenDeposit  float64 `json:"amountTokenDeposit"`
	AddressTokenDeposit string  `json:"addressTokenDeposit"`
	ChainIDTokenDeposit string  `json:"chainIdTokenDeposit"`
	DestAddr            string  `json:"destAddr"`
	AmountTokenOffer    float64 `json:"amountTokenOffer"`
	Hash                string  `json:"hash"`
}

type CompleteOrderRequest struct {
	OrderID        string `json:"orderId"`
	CompletionHash string `json:"completionHash"`
}

type OfferRequest struct {
	ChainID         string  `json:"chainId"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	TokenID         string  `json:"tokenId"`
	Token           string  `json:"token"`
	TokenAddress    string  `json:"tokenAddress"`
	Hash            string  `json:"hash"`
	ExchangeRate    float64 `json:"exchangeRate"`
	ExchangeToken   string  `json:"exchangeToken"`
	ExchangeChainID string  `json:"exchangeChainId"`
	EstimatedTime   float64 `json:"estimatedTime"`
}

type BlockchainRequest struct {
	CaipID                 string            `json:"caipId"`
	ChainID                string            `json:"chainId"`
	Label                  string            `json:"label"`
	Icon                   string            `json:"icon"`
	RPC                    []string          `json:"rpc"`
	NativeTokenSymbol      string            `json:"nativeTokenSymbol"`
	IsEvm                  bool              `json:"isEvm"`
	IsTestnet              bool              `json:"isTestnet"`
	IsActive               bool              `json:"isActive"`
	TransactionExplorerUrl string            `json:"transactionExplorerUrl"`
	AddressExplorerUrl     string            `json:"addressExplorerUrl"`
	UsefulAddresses        map[string]string `json:"usefulAddresses"`
}

type UsefulAddressRequest struct {
	Contract string `json:"contract"`
	Address  string `json:"address"`
}

type WalletRequest struct {
	WalletAddress string  `json:"walletAddress"`
	ChainID       string  `json:"chainId"`
	TokenID       string  `json:"tokenId"`
	Amount        float64 `json:"amount"`
}

type WebhookOrderRequest struct {
	Hash    string `json:"hash"`
	OrderID string `json:"orderId"`
}

type WebhookOfferRequest struct {
	OfferID  string   `json:"offerId"`
	Max      *float64 `json:"max,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Token    string   `json:"token,omitempty"`
	ChainID  string   `json:"chainId,omitempty"`
	IsActive *bool    `json:"isActive,omitempty"`
}

type WebhookOfferAssignRequest struct {
	Hash    string `json:"hash"`
	OfferID string `json:"offerId"`
	Status  string `json:"status"`
}
