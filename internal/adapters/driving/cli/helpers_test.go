package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/commsdash/internal/adapters/driven/csvio"
	"github.com/custodia-labs/commsdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/services"
)

const workedCSV = "ChannelType,IsTextCommunication,IsEmailCommunication\n" +
	"DP,true,false\n" +
	"DP,false,true\n" +
	"FORDPASS,true,true\n" +
	"XYZ,true,true\n"

// setupTestServices wires real services over in-memory stores with a fixed
// window (January 2024 to December 2025) and clock (March 2025).
func setupTestServices(t *testing.T) (*services.ReportService, *memory.ConfigStore) {
	t.Helper()

	report := services.NewReportService(csvio.NewReader(), csvio.NewWriter(), memory.NewAggregateStore())
	report.SetWindow(domain.PeriodSettings{Start: domain.NewPeriod(2024, time.January), Months: 24})
	report.SetClock(func() time.Time { return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) })

	config := memory.NewConfigStore()
	SetServices(report, services.NewSettingsService(config))

	t.Cleanup(func() {
		SetServices(nil, nil)
		reportPeriod, reportJSON, reportExport, reportOut = "", false, false, ""
		watchPeriod, watchExport = "", false
		resetContexts()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return report, config
}

// resetContexts clears the contexts cobra attached on earlier runs. A
// subcommand only inherits the root's context while its own is unset.
func resetContexts() {
	rootCmd.SetContext(context.Background())
	for _, cmd := range rootCmd.Commands() {
		cmd.SetContext(nil) //nolint:staticcheck // nil marks the context as unset for cobra
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
