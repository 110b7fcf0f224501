package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/flagset"
	"storeops.com/console/pkg/core/permission"
	"storeops.com/console/pkg/core/service"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Manage tenant stores",
}

var storesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every tenant store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		stores, err := service.NewStoreService(c).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tOWNER\tCITY\tBILLING\tACTIVE")
		for _, s := range stores {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, s.StoreName, s.OwnerName, s.City, s.BillingStatus, yesNo(s.IsActive))
		}
		return w.Flush()
	},
}

var storesShowCmd = &cobra.Command{
	Use:   "show <store-id>",
	Short: "Show one store with its feature flags and limits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		detail, err := service.NewStoreService(c).Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Store #%d  %s\n", detail.Store.ID, detail.Store.StoreName)
		fmt.Printf("Owner: %s <%s>\n", detail.Store.OwnerName, detail.Store.OwnerEmail)
		fmt.Printf("Billing: %s", detail.Flags.BillingStatus)
		if detail.Flags.BillingPaidUntil != nil {
			fmt.Printf("  paid until %s", *detail.Flags.BillingPaidUntil)
		}
		fmt.Println()
		printFlagSet(detail.Flags)
		return nil
	},
}

var storesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a store with its owner account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}

		var grantIDs []int64
		if createFlags.allPermissions {
			catalog, err := service.NewPermissionService(c).Catalog(cmd.Context())
			if err != nil {
				return err
			}
			grantIDs = permission.IDs(catalog)
		}

		req := service.CreateStoreRequest{
			StoreName:     createFlags.name,
			OwnerName:     createFlags.ownerName,
			OwnerEmail:    createFlags.ownerEmail,
			OwnerPhone:    createFlags.ownerPhone,
			OwnerPassword: createFlags.ownerPassword,
			Address:       createFlags.address,
			City:          createFlags.city,
			Pincode:       createFlags.pincode,
			UpdateRequest: flagset.Default(0).UpdatePayload(),
			Permissions:   grantIDs,
		}
		created, err := service.NewStoreService(c).Create(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Created store #%d %s\n", created.Store.ID, created.Store.StoreName)
		fmt.Printf("Owner credentials: %s / %s\n",
			created.OwnerCredentials.Email, created.OwnerCredentials.Password)
		return nil
	},
}

var createFlags struct {
	name           string
	ownerName      string
	ownerEmail     string
	ownerPhone     string
	ownerPassword  string
	address        string
	city           string
	pincode        string
	allPermissions bool
}

var storesDeleteCmd = &cobra.Command{
	Use:   "delete <store-id>",
	Short: "Delete a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := service.NewStoreService(c).Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted store #%d\n", id)
		return nil
	},
}

func printFlagSet(fs flagset.FlagSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLAG\tENABLED")
	for _, name := range flagset.FlagNames {
		fmt.Fprintf(w, "%s\t%s\n", name, yesNo(fs.Flags[name]))
	}
	w.Flush()

	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LIMIT\tVALUE")
	for _, name := range flagset.LimitNames {
		if v := fs.Limits[name]; v != nil {
			fmt.Fprintf(w, "%s\t%d\n", name, *v)
		} else {
			fmt.Fprintf(w, "%s\tunlimited\n", name)
		}
	}
	w.Flush()
}

func init() {
	f := storesCreateCmd.Flags()
	f.StringVar(&createFlags.name, "name", "", "store name")
	f.StringVar(&createFlags.ownerName, "owner-name", "", "owner full name")
	f.StringVar(&createFlags.ownerEmail, "owner-email", "", "owner email")
	f.StringVar(&createFlags.ownerPhone, "owner-phone", "", "owner phone")
	f.StringVar(&createFlags.ownerPassword, "owner-password", "", "initial owner password")
	f.StringVar(&createFlags.address, "address", "", "street address")
	f.StringVar(&createFlags.city, "city", "", "city")
	f.StringVar(&createFlags.pincode, "pincode", "", "postal code")
	f.BoolVar(&createFlags.allPermissions, "grant-all-permissions", false, "grant the full global permission catalog")
	storesCreateCmd.MarkFlagRequired("name")
	storesCreateCmd.MarkFlagRequired("owner-name")
	storesCreateCmd.MarkFlagRequired("owner-email")
	storesCreateCmd.MarkFlagRequired("owner-phone")
	storesCreateCmd.MarkFlagRequired("owner-password")

	storesCmd.AddCommand(storesListCmd, storesShowCmd, storesCreateCmd, storesDeleteCmd)
	rootCmd.AddCommand(storesCmd)
}
