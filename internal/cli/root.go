package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storeops.com/console/pkg/shared/client"
	"storeops.com/console/pkg/shared/event"
)

var (
	apiURL    string
	tokenFile string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Operations console for the storefront platform",
	Long: `console - super-admin tooling for the multi-tenant storefront platform.

Manages tenant stores, their feature flags and usage limits, permission
catalogs, billing invoices and notification templates through the
super-admin API.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "super-admin API base URL (defaults to CONSOLE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "path of the saved session token (defaults to CONSOLE_TOKEN_FILE)")
}

func resolveAPIURL() (string, error) {
	if apiURL != "" {
		return apiURL, nil
	}
	if fromEnv := os.Getenv("CONSOLE_API_URL"); fromEnv != "" {
		return fromEnv, nil
	}
	return "", fmt.Errorf("no API base URL; pass --api-url or set CONSOLE_API_URL")
}

func resolveTokenFile() string {
	if tokenFile != "" {
		return tokenFile
	}
	if fromEnv := os.Getenv("CONSOLE_TOKEN_FILE"); fromEnv != "" {
		return fromEnv
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".console-token"
	}
	return filepath.Join(home, ".config", "storeops", "token")
}

// tokenStore returns the persistent session token store.
func tokenStore() *client.FileTokenStore {
	return client.NewFileTokenStore(resolveTokenFile())
}

// apiClient builds an authenticated client from the saved session token.
// CONSOLE_RATE_LIMIT caps requests per minute for scripted bulk runs.
func apiClient() (*client.Client, error) {
	baseURL, err := resolveAPIURL()
	if err != nil {
		return nil, err
	}
	opts := []client.Option{client.WithLogger(log.Logger)}
	if raw := os.Getenv("CONSOLE_RATE_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid CONSOLE_RATE_LIMIT %q", raw)
		}
		opts = append(opts, client.WithRateLimit(limit, time.Minute))
	}
	return client.New(baseURL, tokenStore(), opts...), nil
}

// notifier routes session notifications to the terminal.
func notifier() event.Notifier {
	bus := event.NewBus()
	bus.Subscribe(func(ev event.Event) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Level, ev.Message)
	})
	return bus
}

func parseStoreID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid store id %q", arg)
	}
	return id, nil
}

func yesNo(enabled bool) string {
	if enabled {
		return "yes"
	}
	return "no"
}
