package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storeops.com/console/pkg/core/flagset"
	"storeops.com/console/pkg/core/reconcile"
	"storeops.com/console/pkg/core/service"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Inspect and edit a store's feature flags and limits",
}

var featuresShowCmd = &cobra.Command{
	Use:   "show <store-id>",
	Short: "Show the current flag and limit state",
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

		session := reconcile.NewFlagSession(service.NewStoreService(c), notifier(), id)
		if err := session.Load(cmd.Context()); err != nil {
			return err
		}
		printFlagSet(session.Flags())
		return nil
	},
}

var featureEditFlags struct {
	enable  []string
	disable []string
	limits  []string
	billing string
	paidTo  string
}

var featuresSetCmd = &cobra.Command{
	Use:   "set <store-id>",
	Short: "Apply flag, limit and billing edits and save them",
	Long: `Loads the store's current state, applies the requested edits and
saves the complete state back in one update.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		c, err := apiClient()
		if err != nil {
			return err
		}

		session := reconcile.NewFlagSession(service.NewStoreService(c), notifier(), id)
		if err := session.Load(cmd.Context()); err != nil {
			return err
		}

		for _, name := range featureEditFlags.enable {
			if err := session.SetFlag(name, true); err != nil {
				return err
			}
		}
		for _, name := range featureEditFlags.disable {
			if err := session.SetFlag(name, false); err != nil {
				return err
			}
		}
		for _, arg := range featureEditFlags.limits {
			name, value, err := parseLimitArg(arg)
			if err != nil {
				return err
			}
			if err := session.SetLimit(name, value); err != nil {
				return err
			}
		}
		if featureEditFlags.billing != "" {
			status := flagset.BillingStatus(featureEditFlags.billing)
			if !status.Valid() {
				return fmt.Errorf("invalid billing status %q", featureEditFlags.billing)
			}
			if err := session.SetBillingStatus(status); err != nil {
				return err
			}
		}
		if featureEditFlags.paidTo != "" {
			if err := session.SetBillingPaidUntil(featureEditFlags.paidTo); err != nil {
				return err
			}
		}

		if !session.Dirty() {
			fmt.Println("Nothing to change")
			return nil
		}
		if err := session.Save(cmd.Context()); err != nil {
			return err
		}
		printFlagSet(session.Flags())
		return nil
	},
}

// parseLimitArg splits "max_branches=5"; the value "none" clears the limit.
func parseLimitArg(arg string) (string, *int64, error) {
	name, raw, found := strings.Cut(arg, "=")
	if !found {
		return "", nil, fmt.Errorf("limit must be name=value, got %q", arg)
	}
	if raw == "none" {
		return name, nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", nil, fmt.Errorf("limit %s: %q is not a number", name, raw)
	}
	return name, &value, nil
}

func init() {
	f := featuresSetCmd.Flags()
	f.StringSliceVar(&featureEditFlags.enable, "enable", nil, "flag to turn on (repeatable)")
	f.StringSliceVar(&featureEditFlags.disable, "disable", nil, "flag to turn off (repeatable)")
	f.StringSliceVar(&featureEditFlags.limits, "limit", nil, "limit as name=value, value 'none' clears it (repeatable)")
	f.StringVar(&featureEditFlags.billing, "billing-status", "", "billing status (pending, active, suspended, expired)")
	f.StringVar(&featureEditFlags.paidTo, "paid-until", "", "billing paid-until date, YYYY-MM-DD")

	featuresCmd.AddCommand(featuresShowCmd, featuresSetCmd)
	rootCmd.AddCommand(featuresCmd)
}
