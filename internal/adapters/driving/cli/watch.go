package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/commsdash/internal/adapters/driving/watch"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/logger"
)

var (
	watchPeriod   string
	watchDebounce time.Duration
	watchExport   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.csv>",
	Short: "Re-upload a CSV export whenever it changes",
	Long: `Uploads the file for a month and prints the dashboard, then watches the
file and repeats the upload each time it is saved. Every upload replaces
the month's figures. A file that fails to parse leaves the previous
figures in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchPeriod, "period", "p", "", "month the file belongs to (default current month)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "wait for writes to settle before re-uploading")
	watchCmd.Flags().BoolVarP(&watchExport, "export", "e", false, "write the CSV report after every upload")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}
	period, err := resolvePeriod(watchPeriod)
	if err != nil {
		return err
	}
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	refresh := func(ctx context.Context) {
		if err := refreshFromFile(ctx, cmd, period, path); err != nil {
			logger.Error("%v", err)
			cmd.PrintErrf("Error: %v\n", err)
		}
	}

	w, err := watch.New(path, watchDebounce, refresh)
	if err != nil {
		return err
	}

	refresh(ctx)
	cmd.Printf("\nWatching %s for changes (Ctrl+C to stop)\n", w.Path())
	return w.Run(ctx)
}

func refreshFromFile(ctx context.Context, cmd *cobra.Command, period domain.Period, path string) error {
	summary, err := uploadFile(ctx, period, path)
	if err != nil {
		return err
	}
	stats, err := reportService.Stats(ctx, period)
	if err != nil {
		return err
	}

	printUploadSummary(cmd, summary)
	cmd.Println()
	printDashboard(cmd, stats)

	if watchExport {
		return exportReport(ctx, cmd, period, "")
	}
	return nil
}
