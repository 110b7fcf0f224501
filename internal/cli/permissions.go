package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/permission"
	"storeops.com/console/pkg/core/reconcile"
	"storeops.com/console/pkg/core/service"
)

var permissionsCmd = &cobra.Command{
	Use:   "permissions",
	Short: "Manage store permission catalogs",
}

var permissionsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the global permission catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		entries, err := service.NewPermissionService(c).Catalog(cmd.Context())
		if err != nil {
			return err
		}
		printPermissionGroups(permission.GroupByFeature(entries))
		return nil
	},
}

var permissionsListCmd = &cobra.Command{
	Use:   "list <store-id>",
	Short: "Show a store's permission state grouped by feature",
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

		session := reconcile.NewPermissionSession(service.NewPermissionService(c), notifier(), id)
		if err := session.Load(cmd.Context()); err != nil {
			return err
		}
		if session.Empty() {
			return nil
		}
		printPermissionGroups(session.Groups())
		return nil
	},
}

var permissionsToggleCmd = &cobra.Command{
	Use:   "toggle <store-id> <permission-id...>",
	Short: "Flip permissions and save the full catalog back",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}

		session := reconcile.NewPermissionSession(service.NewPermissionService(c), notifier(), id)
		if err := session.Load(cmd.Context()); err != nil {
			return err
		}
		for _, arg := range args[1:] {
			permID, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid permission id %q", arg)
			}
			if err := session.Toggle(permID); err != nil {
				return err
			}
		}
		if err := session.Save(cmd.Context()); err != nil {
			return err
		}
		printPermissionGroups(session.Groups())
		return nil
	},
}

func printPermissionGroups(groups []permission.Group) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t\t\n", g.Name)
		for _, e := range g.Entries {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", e.ID, e.Code, yesNo(e.Enabled))
		}
	}
	w.Flush()
}

func init() {
	permissionsCmd.AddCommand(permissionsCatalogCmd, permissionsListCmd, permissionsToggleCmd)
	rootCmd.AddCommand(permissionsCmd)
}
