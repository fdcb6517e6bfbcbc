package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	flagHash    = "hash"
	flagOrderID = "order-id"
)

var (
	webhookCmd = &cobra.Command{
		Use:   "webhook",
		Short: "Manual settlement reporting",
		Long:  `Report settlement outcomes against the webhook surface, for recovery when the settlement process misses one`,
	}

	webhookOrderSuccessCmd = &cobra.Command{
		Use:   "order-success",
		Short: "Report an order settlement",
		Long:  `Report an order settlement by deposit hash, assigning the counterparty order id`,
		Run: func(cmd *cobra.Command, args []string) {
			hash, _ := cmd.Flags().GetString(flagHash)
			orderID, _ := cmd.Flags().GetString(flagOrderID)
			apiKey, err := inputAPIKey()
			if err != nil {
				fmt.Println("Error while reading the API key:", err)
				return
			}
			body := map[string]interface{}{"hash": hash, "orderId": orderID}
			if err := doRequest("PUT", "/api/v1/webhook/order", apiKey, body, nil); err != nil {
				fmt.Println("Error while reporting the settlement:", err)
				return
			}
			fmt.Println("Order settlement reported.")
		},
	}

	webhookOrderFailureCmd = &cobra.Command{
		Use:   "order-failure",
		Short: "Report an order settlement failure",
		Long:  `Report an order settlement failure by deposit hash`,
		Run: func(cmd *cobra.Command, args []string) {
			hash, _ := cmd.Flags().GetString(flagHash)
			apiKey, err := inputAPIKey()
			if err != nil {
				fmt.Println("Error while reading the API key:", err)
				return
			}
			body := map[string]interface{}{"hash": hash}
			if err := doRequest("PUT", "/api/v1/webhook/order/failure", apiKey, body, nil); err != nil {
				fmt.Println("Error while reporting the failure:", err)
				return
			}
			fmt.Println("Order failure reported.")
		},
	}
)

func inputAPIKey() (string, error) {
	fmt.Print("Enter the webhook API key: ")
	byteKey, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(byteKey)), nil
}

func init() {
	webhookOrderSuccessCmd.Flags().String(flagHash, "", "deposit transaction hash")
	webhookOrderSuccessCmd.Flags().String(flagOrderID, "", "counterparty order id")
	webhookOrderFailureCmd.Flags().String(flagHash, "", "deposit transaction hash")
	webhookCmd.AddCommand(webhookOrderSuccessCmd)
	webhookCmd.AddCommand(webhookOrderFailureCmd)
}
