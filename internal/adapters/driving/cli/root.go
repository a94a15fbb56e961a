// Package cli provides the cobra command tree for commsdash.
// Commands reach the core only through the driving ports, which main
// injects with SetServices before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
	"github.com/custodia-labs/commsdash/internal/logger"
)

var (
	version = "dev"
	verbose bool

	reportService   driving.ReportService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "commsdash",
	Short: "Communication preference dashboard",
	Long: `commsdash summarises customer communication-preference exports.

Upload a CSV export for a month to see opt-in counts by platform
(Dealer Web, FordPass, Owner Web, Tier3) and channel (Text Only,
Email Only, Email & Text, No Comms), with totals, percentages and
a CSV report export.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
}

// SetServices injects the driving ports used by every command.
func SetServices(report driving.ReportService, settings driving.SettingsService) {
	reportService = report
	settingsService = settings
}

// SetVersion sets the version reported by `commsdash version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
