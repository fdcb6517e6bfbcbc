package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
)

const flagMine = "mine"

var (
	offersCmd = &cobra.Command{
		Use:   "offers",
		Short: "Offer operations",
		Long:  `Offer operations`,
	}

	offerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List active offers",
		Long:  `List active offers, or your own offers with --mine`,
		Run: func(cmd *cobra.Command, args []string) {
			mine, _ := cmd.Flags().GetBool(flagMine)
			path := "/api/v1/offers"
			if mine {
				path = "/api/v1/offers/user"
			}
			offers := []database.Offer{}
			if err := doRequest("GET", path, "", nil, &offers); err != nil {
				fmt.Println("Error while getting the offer list:", err)
				return
			}
			printOffers(offers)
		},
	}
)

func printOffers(offers []database.Offer) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Offer ID", "Chain", "Token", "Min", "Max",
		"Rate", "Exchange Token", "Active", "Status"})

	table.SetBorder(false)
	table.SetRowLine(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, offer := range offers {
		table.Append([]string{offer.OfferID, offer.ChainID, offer.Token,
			fmt.Sprintf("%.6f", offer.Min), fmt.Sprintf("%.6f", offer.Max),
			fmt.Sprintf("%.6f", offer.ExchangeRate), offer.ExchangeToken,
			fmt.Sprintf("%t", offer.IsActive), offer.Status})
	}

	table.Render()
}

func init() {
	offerListCmd.Flags().Bool(flagMine, false, "list your own offers")
	offersCmd.AddCommand(offerListCmd)
}
