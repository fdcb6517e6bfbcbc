package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

const (
	flagProvider = "provider"
	flagOffset   = "offset"
	flagLimit    = "limit"
	flagActive   = "active"
)

var (
	ordersCmd = &cobra.Command{
		Use:   "orders",
		Short: "Order operations",
		Long:  `Order operations`,
	}

	orderListCmd = &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Long:  `List orders you placed, or orders against your offers with --provider`,
		Run: func(cmd *cobra.Command, args []string) {
			provider, _ := cmd.Flags().GetBool(flagProvider)
			path := "/api/v1/orders/user"
			if provider {
				path = "/api/v1/orders/liquidity-provider"
			}
			query := ""
			offset, _ := cmd.Flags().GetInt64(flagOffset)
			if offset > 0 {
				query += fmt.Sprintf("&%s=%d", flagOffset, offset)
			}
			limit, _ := cmd.Flags().GetInt64(flagLimit)
			if limit > 0 {
				query += fmt.Sprintf("&%s=%d", flagLimit, limit)
			}
			if query != "" {
				path += "?" + query[1:]
			}
			orders := []database.Order{}
			if err := doRequest("GET", path, "", nil, &orders); err != nil {
				fmt.Println("Error while getting the order list:", err)
				return
			}
			printOrders(orders)
		},
	}
)

func printOrders(orders []database.Order) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Order ID", "Offer ID", "Deposit Amount",
		"Deposit Chain", "Dest Address", "Status", "Date"})

	table.SetBorder(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, order := range orders {
		table.Append([]string{order.OrderID, order.OfferID,
			fmt.Sprintf("%.6f", order.AmountTokenDeposit), order.ChainIDTokenDeposit,
			order.DestAddr, order.Status, order.Date.Format("2006-01-02 15:04:05 MST")})
	}

	table.Render()
}

func init() {
	orderListCmd.Flags().Bool(flagProvider, false, "list orders against your offers")
	orderListCmd.Flags().Int64(flagOffset, 0, "pagination offset")
	orderListCmd.Flags().Int64(flagLimit, 0, "pagination limit")
	ordersCmd.AddCommand(orderListCmd)
}
