package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List the selectable months",
	Long: `Lists the months that can be selected for upload and export.
The window is configured with the periods.start and periods.months settings.`,
	Args: cobra.NoArgs,
	RunE: runPeriods,
}

func init() {
	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	uploaded, err := reportService.Uploaded(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}
	hasData := make(map[domain.Period]bool, len(uploaded))
	for _, p := range uploaded {
		hasData[p] = true
	}

	current := reportService.DefaultPeriod()
	for _, p := range reportService.Periods() {
		marker := "  "
		if p == current {
			marker = "> "
		}
		line := marker + fmt.Sprintf("%-16s %s", p.Label(), p.Key())
		if hasData[p] {
			line += "  (uploaded)"
		}
		cmd.Println(line)
	}
	return nil
}
