package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

const (
	flagAll               = "all"
	flagCaipID            = "caip-id"
	flagChainID           = "chain-id"
	flagLabel             = "label"
	flagIcon              = "icon"
	flagRPC               = "rpc"
	flagNativeTokenSymbol = "native-token-symbol"
	flagIsEvm             = "evm"
	flagIsTestnet         = "testnet"
	flagIsActive          = "active-chain"
	flagTxExplorer        = "tx-explorer"
	flagAddressExplorer   = "address-explorer"
)

var (
	chainsCmd = &cobra.Command{
		Use:   "chains",
		Short: "Blockchain operations",
		Long:  `Blockchain operations`,
	}

	chainListCmd = &cobra.Command{
		Use:   "list",
		Short: "List active blockchains",
		Long:  `List active blockchains, or every registered one with --all`,
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/blockchains"
			if all, _ := cmd.Flags().GetBool(flagAll); all {
				path += "?all=true"
			}
			chains := []database.Blockchain{}
			if err := doRequest("GET", path, "", nil, &chains); err != nil {
				fmt.Println("Error while getting the blockchain list:", err)
				return
			}
			printChains(chains)
		},
	}

	chainAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Register a blockchain",
		Long:  `Register a blockchain with its CAIP id, RPC endpoints and explorers`,
		Run: func(cmd *cobra.Command, args []string) {
			icon, _ := cmd.Flags().GetString(flagIcon)
			if !govalidator.IsURL(icon) {
				fmt.Println("Not a valid icon URL")
				return
			}
			rpc, _ := cmd.Flags().GetStringSlice(flagRPC)
			for _, endpoint := range rpc {
				if !govalidator.IsURL(endpoint) {
					fmt.Printf("Not a valid RPC URL: %s\n", endpoint)
					return
				}
			}
			caipID, _ := cmd.Flags().GetString(flagCaipID)
			chainID, _ := cmd.Flags().GetString(flagChainID)
			label, _ := cmd.Flags().GetString(flagLabel)
			symbol, _ := cmd.Flags().GetString(flagNativeTokenSymbol)
			isEvm, _ := cmd.Flags().GetBool(flagIsEvm)
			isTestnet, _ := cmd.Flags().GetBool(flagIsTestnet)
			isActive, _ := cmd.Flags().GetBool(flagIsActive)
			txExplorer, _ := cmd.Flags().GetString(flagTxExplorer)
			addressExplorer, _ := cmd.Flags().GetString(flagAddressExplorer)
			body := map[string]interface{}{
				"caipId":                 caipID,
				"chainId":                chainID,
				"label":                  label,
				"icon":                   icon,
				"rpc":                    rpc,
				"nativeTokenSymbol":      symbol,
				"isEvm":                  isEvm,
				"isTestnet":              isTestnet,
				"isActive":               isActive,
				"transactionExplorerUrl": txExplorer,
				"addressExplorerUrl":     addressExplorer,
			}
			result := map[string]interface{}{}
			if err := doRequest("POST", "/api/v1/blockchains", "", body, &result); err != nil {
				fmt.Println("Error while registering the blockchain:", err)
				return
			}
			fmt.Printf("Blockchain registered: %v\n", result["insertedId"])
		},
	}
)

func printChains(chains []database.Blockchain) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "CAIP ID", "Chain ID", "Label", "Symbol",
		"EVM", "Testnet", "Active", "RPC"})

	table.SetBorder(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, chain := range chains {
		table.Append([]string{chain.ID.Hex(), chain.CaipID, chain.ChainID,
			chain.Label, chain.NativeTokenSymbol, fmt.Sprintf("%t", chain.IsEvm),
			fmt.Sprintf("%t", chain.IsTestnet), fmt.Sprintf("%t", chain.IsActive),
			strings.Join(chain.RPC, "\n")})
	}

	table.Render()
}

func init() {
	chainListCmd.Flags().Bool(flagAll, false, "include inactive blockchains")
	chainAddCmd.Flags().String(flagCaipID, "", "CAIP id, namespace:reference")
	chainAddCmd.Flags().String(flagChainID, "", "chain id")
	chainAddCmd.Flags().String(flagLabel, "", "display label")
	chainAddCmd.Flags().String(flagIcon, "", "icon URL")
	chainAddCmd.Flags().StringSlice(flagRPC, nil, "RPC endpoint URLs")
	chainAddCmd.Flags().String(flagNativeTokenSymbol, "", "native token symbol")
	chainAddCmd.Flags().Bool(flagIsEvm, false, "EVM compatible")
	chainAddCmd.Flags().Bool(flagIsTestnet, false, "testnet chain")
	chainAddCmd.Flags().Bool(flagIsActive, false, "active for discovery")
	chainAddCmd.Flags().String(flagTxExplorer, "", "transaction explorer URL template")
	chainAddCmd.Flags().String(flagAddressExplorer, "", "address explorer URL template")
	chainsCmd.AddCommand(chainListCmd)
	chainsCmd.AddCommand(chainAddCmd)
}
