package handlers

import (
	"regexp"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/validation"
)

// Per-endpoint validation rule sets. Rules run in declaration order and
// every failure is reported; the allow-lists reject any field not named.

var webhookStatusPattern = regexp.MustCompile(`^(pending|success|failure)$`)

func body(field string, kind validation.Kind) validation.Rule {
	return validation.Rule{Field: field, Section: validation.SectionBody, Kind: kind}
}

func query(field string, kind validation.Kind) validation.Rule {
	return validation.Rule{Field: field, Section: validation.SectionQuery, Kind: kind}
}

func optionalQuery(field string, kind validation.Kind) validation.Rule {
	return validation.Rule{Field: field, Section: validation.SectionQuery, Kind: kind, Optional: true}
}

func param(field string, kind validation.Kind) validation.Rule {
	return validation.Rule{Field: field, Section: validation.SectionParams, Kind: kind}
}

var paginationRules = []validation.Rule{
	optionalQuery("offset", validation.IsNumeric),
	optionalQuery("limit", validation.IsNumeric),
}

var paginationAllowed = []string{"offset", "limit"}

var createOrderRules = []validation.Rule{
	body("orderId", validation.IsString),
	body("orderId", validation.NotEmpty),
	body("offerId", validation.IsString),
	body("offerId", validation.NotEmpty),
	body("amountTokenDeposit", validation.IsNumeric),
	body("addressTokenDeposit", validation.IsString),
	body("addressTokenDeposit", validation.NotEmpty),
	body("chainIdTokenDeposit", validation.IsString),
	body("chainIdTokenDeposit", validation.NotEmpty),
	body("destAddr", validation.IsString),
	body("destAddr", validation.NotEmpty),
	body("amountTokenOffer", validation.IsNumeric),
	body("hash", validation.IsString),
	body("hash", validation.NotEmpty),
}

var createOrderAllowed = map[validation.Section][]string{
	validation.SectionBody: {
		"orderId", "offerId", "amountTokenDeposit", "addressTokenDeposit",
		"chainIdTokenDeposit", "destAddr", "amountTokenOffer", "hash",
	},
}

var ordersByUserAllowed = map[validation.Section][]string{
	validation.SectionQuery: paginationAllowed,
}

var ordersByProviderRules = append(append([]validation.Rule{}, paginationRules...),
	optionalQuery("isActive", validation.IsBoolean),
)

var ordersByProviderAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"offset", "limit", "isActive"},
}

var orderByOrderIDRules = []validation.Rule{
	query("orderId", validation.IsString),
	query("orderId", validation.NotEmpty),
}

var orderByOrderIDAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"orderId"},
}

var orderByIDRules = []validation.Rule{
	query("id", validation.IsMongoID),
}

var orderByIDAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"id"},
}

var completeOrderRules = []validation.Rule{
	body("orderId", validation.IsString),
	body("orderId", validation.NotEmpty),
	body("completionHash", validation.IsString),
	body("completionHash", validation.NotEmpty),
}

var completeOrderAllowed = map[validation.Section][]string{
	validation.SectionBody: {"orderId", "completionHash"},
}

var deleteOrderRules = []validation.Rule{
	param("orderId", validation.NotEmpty),
}

var deleteOrderAllowed = map[validation.Section][]string{
	validation.SectionParams: {"orderId"},
}

var createOfferRules = []validation.Rule{
	body("chainId", validation.IsString),
	body("chainId", validation.NotEmpty),
	body("min", validation.IsNumeric),
	body("max", validation.IsNumeric),
	body("tokenId", validation.IsString),
	body("tokenId", validation.NotEmpty),
	body("token", validation.IsString),
	body("token", validation.NotEmpty),
	body("tokenAddress", validation.IsString),
	body("tokenAddress", validation.NotEmpty),
	body("hash", validation.IsString),
	body("hash", validation.NotEmpty),
	body("exchangeRate", validation.IsNumeric),
	body("exchangeToken", validation.IsString),
	body("exchangeToken", validation.NotEmpty),
	body("exchangeChainId", validation.IsString),
	body("exchangeChainId", validation.NotEmpty),
	body("estimatedTime", validation.IsNumeric),
}

var createOfferAllowed = map[validation.Section][]string{
	validation.SectionBody: {
		"chainId", "min", "max", "tokenId", "token", "tokenAddress", "hash",
		"exchangeRate", "exchangeToken", "exchangeChainId", "estimatedTime",
	},
}

var offersAllowed = map[validation.Section][]string{
	validation.SectionQuery: paginationAllowed,
}

var offersByUserRules = []validation.Rule{
	optionalQuery("isActive", validation.IsBoolean),
}

var offersByUserAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"isActive"},
}

var offerByOfferIDRules = []validation.Rule{
	query("offerId", validation.IsString),
	query("offerId", validation.NotEmpty),
}

var offerByOfferIDAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"offerId"},
}

var deleteOfferRules = []validation.Rule{
	param("offerId", validation.NotEmpty),
}

var deleteOfferAllowed = map[validation.Section][]string{
	validation.SectionParams: {"offerId"},
}

var createBlockchainRules = []validation.Rule{
	body("caipId", validation.IsCaipID),
	body("chainId", validation.IsString),
	body("chainId", validation.NotEmpty),
	body("label", validation.IsString),
	body("label", validation.NotEmpty),
	body("icon", validation.IsURL),
	body("rpc", validation.IsArray),
	body("rpc", validation.IsArrayOfURL),
	body("rpc", validation.NotEmpty),
	body("nativeTokenSymbol", validation.IsString),
	body("nativeTokenSymbol", validation.NotEmpty),
	body("isEvm", validation.IsBoolean),
	body("isTestnet", validation.IsBoolean),
	body("isActive", validation.IsBoolean),
	body("transactionExplorerUrl", validation.IsString),
	body("transactionExplorerUrl", validation.NotEmpty),
	body("addressExplorerUrl", validation.IsString),
	body("addressExplorerUrl", validation.NotEmpty),
}

var createBlockchainAllowed = map[validation.Section][]string{
	validation.SectionBody: {
		"caipId", "chainId", "label", "icon", "rpc", "nativeTokenSymbol",
		"isEvm", "isTestnet", "isActive", "transactionExplorerUrl",
		"addressExplorerUrl", "usefulAddresses",
	},
}

var blockchainsRules = []validation.Rule{
	optionalQuery("all", validation.IsBoolean),
}

var blockchainsAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"all"},
}

var blockchainIDRules = []validation.Rule{
	param("id", validation.IsMongoID),
}

var blockchainIDAllowed = map[validation.Section][]string{
	validation.SectionParams: {"id"},
}

var upsertUsefulAddressRules = []validation.Rule{
	param("id", validation.IsMongoID),
	body("contract", validation.IsString),
	body("contract", validation.NotEmpty),
	body("address", validation.IsString),
	body("address", validation.NotEmpty),
}

var upsertUsefulAddressAllowed = map[validation.Section][]string{
	validation.SectionBody:   {"contract", "address"},
	validation.SectionParams: {"id"},
}

var deleteUsefulAddressRules = []validation.Rule{
	param("id", validation.IsMongoID),
	body("contract", validation.IsString),
	body("contract", validation.NotEmpty),
}

var deleteUsefulAddressAllowed = map[validation.Section][]string{
	validation.SectionBody:   {"contract"},
	validation.SectionParams: {"id"},
}

var upsertWalletRules = []validation.Rule{
	body("walletAddress", validation.IsString),
	body("walletAddress", validation.NotEmpty),
	body("chainId", validation.IsString),
	body("chainId", validation.NotEmpty),
	body("tokenId", validation.IsString),
	body("tokenId", validation.NotEmpty),
	body("amount", validation.IsNumeric),
}

var upsertWalletAllowed = map[validation.Section][]string{
	validation.SectionBody: {"walletAddress", "chainId", "tokenId", "amount"},
}

var walletsRules = []validation.Rule{
	optionalQuery("chainId", validation.IsString),
}

var walletsAllowed = map[validation.Section][]string{
	validation.SectionQuery: {"chainId"},
}

var deleteWalletRules = []validation.Rule{
	body("walletAddress", validation.IsString),
	body("walletAddress", validation.NotEmpty),
	body("chainId", validation.IsString),
	body("chainId", validation.NotEmpty),
}

var deleteWalletAllowed = map[validation.Section][]string{
	validation.SectionBody: {"walletAddress", "chainId"},
}

var webhookOrderRules = []validation.Rule{
	body("hash", validation.IsString),
	body("hash", validation.NotEmpty),
	body("orderId", validation.IsString),
	body("orderId", validation.NotEmpty),
}

var webhookOrderAllowed = map[validation.Section][]string{
	validation.SectionBody: {"hash", "orderId"},
}

var webhookOrderHashRules = []validation.Rule{
	body("hash", validation.IsString),
	body("hash", validation.NotEmpty),
}

var webhookOrderHashAllowed = map[validation.Section][]string{
	validation.SectionBody: {"hash"},
}

func webhookOfferRules(valueField string, kind validation.Kind) []validation.Rule {
	return []validation.Rule{
		body("offerId", validation.IsString),
		body("offerId", validation.NotEmpty),
		body(valueField, kind),
	}
}

func webhookOfferAllowed(valueField string) map[validation.Section][]string {
	return map[validation.Section][]string{
		validation.SectionBody: {"offerId", valueField},
	}
}

var webhookOfferAssignRules = []validation.Rule{
	body("hash", validation.IsString),
	body("hash", validation.NotEmpty),
	body("offerId", validation.IsString),
	body("offerId", validation.NotEmpty),
	{
		Field:   "status",
		Section: validation.SectionBody,
		Kind:    validation.MatchesPattern,
		Pattern: webhookStatusPattern,
		Message: "must be pending, success or failure",
	},
}

var webhookOfferAssignAllowed = map[validation.Section][]string{
	validation.SectionBody: {"hash", "offerId", "status"},
}
