// Command commsdash is the communication preference dashboard.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/commsdash/internal/adapters/driven/config/file"
	"github.com/custodia-labs/commsdash/internal/adapters/driven/csvio"
	"github.com/custodia-labs/commsdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/commsdash/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/commsdash/internal/adapters/driving/cli"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
	"github.com/custodia-labs/commsdash/internal/core/services"
	"github.com/custodia-labs/commsdash/internal/logger"
)

// Environment variables read at start-up. A .env file in the working
// directory is loaded first when present.
const (
	envConfigDir = "COMMSDASH_CONFIG_DIR"
	envStorage   = "COMMSDASH_STORAGE"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore(os.Getenv(envConfigDir))
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	backend, err := selectBackend(settings.Storage.Backend, os.Getenv(envStorage))
	if err != nil {
		return err
	}
	store, closer, err := openAggregateStore(backend)
	if err != nil {
		return err
	}
	defer closer.Close()

	reportService := services.NewReportService(csvio.NewReader(), csvio.NewWriter(), store)
	reportService.SetWindow(settings.Periods)
	reportService.SetExportPrefix(settings.Export.Prefix)

	cli.SetServices(reportService, settingsService)
	cli.SetVersion(version)
	return cli.Execute()
}

// selectBackend applies the environment override to the configured backend.
func selectBackend(configured domain.StorageBackend, override string) (domain.StorageBackend, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return configured, nil
	}
	backend := domain.StorageBackend(strings.ToLower(override))
	if !backend.IsValid() {
		return "", fmt.Errorf("%w: %s=%q", domain.ErrInvalidInput, envStorage, override)
	}
	return backend, nil
}

// openAggregateStore opens the session store for backend. Both backends
// live in memory and are discarded on exit.
func openAggregateStore(backend domain.StorageBackend) (driven.AggregateStore, io.Closer, error) {
	switch backend {
	case domain.StorageSQLite:
		db, err := sqlite.NewStore("")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Debug("using in-memory sqlite aggregate store")
		return db.AggregateStore(), db, nil
	default:
		logger.Debug("using in-memory aggregate store")
		return memory.NewAggregateStore(), closerFunc(func() error { return nil }), nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
