package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/service"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate against the super-admin API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := cmd.Flags().GetString("password")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		c, err := apiClient()
		if err != nil {
			return err
		}
		auth := service.NewAuthService(c, tokenStore())
		admin, err := auth.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", admin.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		auth := service.NewAuthService(c, tokenStore())
		if err := auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "super-admin password")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
