// Package cli is the operator client for the delight API: listings for
// orders, offers and blockchains, chain registration, and manual settlement
// reporting against the webhook surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	serverUrlEnv   = "DLT_SERVER_URL"
	accessTokenEnv = "DLT_ACCESS_TOKEN"
)

var (
	serverUrl   string
	accessToken string

	rootCmd = &cobra.Command{
		Use:   "delight-cli",
		Short: "delight-cli application",
		Long:  `Operator client for the grindery delight liquidity exchange API`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			serverUrl = os.Getenv(serverUrlEnv)
			if serverUrl == "" {
				fmt.Printf("Error while getting delight server url. no env %s value\n", serverUrlEnv)
				os.Exit(1)
			}
			accessToken = os.Getenv(accessTokenEnv)
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(offersCmd)
	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(webhookCmd)
}
