package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/service"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform-wide totals and top stores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		data, err := service.NewDashboardService(c).Summary(cmd.Context())
		if err != nil {
			return err
		}

		s := data.Summary
		fmt.Printf("Stores: %d  Customers: %d  Orders: %d  Revenue: %.2f\n",
			s.TotalStores, s.TotalCustomers, s.TotalOrders, s.TotalRevenue)
		fmt.Printf("Catalog: %d categories, %d products, %d variants\n",
			s.TotalCategories, s.TotalProducts, s.TotalVariants)

		if len(data.TopProducts) > 0 {
			fmt.Println("\nTop products:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, p := range data.TopProducts {
				fmt.Fprintf(w, "  %s\tsold %d\trevenue %.2f\n", p.ProductName, p.TotalSold, p.TotalRevenue)
			}
			w.Flush()
		}

		if len(data.Stores) > 0 {
			fmt.Println("\nStores:")
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  ID\tNAME\tCUSTOMERS\tORDERS\tREVENUE")
			for _, st := range data.Stores {
				fmt.Fprintf(w, "  %d\t%s\t%d\t%d\t%.2f\n",
					st.StoreID, st.StoreName, st.CustomerCount, st.OrderCount, st.Revenue)
			}
			w.Flush()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
