package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

var (
	reportPeriod string
	reportJSON   bool
	reportExport bool
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report [file.csv]",
	Short: "Show the dashboard for a month",
	Long: `Uploads a communication-preference CSV export for a month and prints
the dashboard: per-platform counts for each channel category, category
totals, and opt-in percentages by category and platform.

The CSV needs a header row with ChannelType, IsTextCommunication and
IsEmailCommunication columns; other columns are ignored. Rows whose
ChannelType is not DP, FORDPASS, OWNERWEB or TIER3DEALERWEB are dropped
and reported in the upload summary.

Without a file the dashboard shows the no-data placeholder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", "", `month to report, e.g. "January 2025" or 2025-01 (default current month)`)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output the upload summary and stats as JSON")
	reportCmd.Flags().BoolVarP(&reportExport, "export", "e", false, "write the CSV report to the export directory")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", `write the CSV report to this file or directory ("-" for stdout)`)
	rootCmd.AddCommand(reportCmd)
}

// reportOutput is the --json document.
type reportOutput struct {
	Upload *domain.UploadSummary `json:"upload,omitempty"`
	Stats  *domain.Stats         `json:"stats"`
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	if reportJSON && reportOut == "-" {
		return errors.New("--json and --out - both write to stdout")
	}

	period, err := resolvePeriod(reportPeriod)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var summary *domain.UploadSummary
	if len(args) == 1 {
		summary, err = uploadFile(ctx, period, args[0])
		if err != nil {
			return err
		}
	}

	stats, err := reportService.Stats(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to derive stats: %w", err)
	}

	if reportOut == "-" {
		return exportReport(ctx, cmd, period, reportOut)
	}

	if reportJSON {
		if err := printJSON(cmd, reportOutput{Upload: summary, Stats: stats}); err != nil {
			return err
		}
	} else {
		if summary != nil {
			printUploadSummary(cmd, summary)
			cmd.Println()
		}
		printDashboard(cmd, stats)
	}

	if reportExport || reportOut != "" {
		return exportReport(ctx, cmd, period, reportOut)
	}
	return nil
}

// resolvePeriod parses a --period value, defaulting to the service's period.
func resolvePeriod(value string) (domain.Period, error) {
	if value == "" {
		return reportService.DefaultPeriod(), nil
	}
	return domain.ParsePeriod(value)
}

func uploadFile(ctx context.Context, period domain.Period, path string) (*domain.UploadSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	summary, err := reportService.Upload(ctx, period, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return summary, nil
}

// exportReport writes the period's CSV report. out is a file, a directory,
// "-" for stdout, or empty for the configured export directory.
func exportReport(ctx context.Context, cmd *cobra.Command, period domain.Period, out string) error {
	if out == "-" {
		_, err := reportService.WriteExport(ctx, period, cmd.OutOrStdout())
		if errors.Is(err, domain.ErrNoData) {
			cmd.PrintErrf("Nothing to export for %s: upload a CSV export first.\n", period.Label())
			return nil
		}
		return err
	}

	report, err := reportService.Export(ctx, period)
	if errors.Is(err, domain.ErrNoData) {
		cmd.Printf("Nothing to export for %s: upload a CSV export first.\n", period.Label())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	path := out
	if path == "" {
		path = filepath.Join(exportDir(), report.Filename)
	} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, report.Filename)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := reportService.WriteExport(ctx, period, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to export: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Exported %s\n", path)
	return nil
}

func exportDir() string {
	if settingsService == nil {
		return "."
	}
	settings, err := settingsService.Get()
	if err != nil || settings.Export.Dir == "" {
		return "."
	}
	return settings.Export.Dir
}
