package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-viewer/internal/logging"
	"github.com/mr1hm/go-quake-viewer/internal/repository"
	"github.com/mr1hm/go-quake-viewer/internal/table"
	"github.com/mr1hm/go-quake-viewer/internal/tui"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal viewer",
	Long: `Open an interactive table with a dataset dropdown and a sort button.
Tab moves between controls, q quits. Logs go to --log-file; load failures are
also recorded in the alerts database.`,
	RunE: runTUI,
}

var tuiLogFile string

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "quake-table.log", "file to write logs to")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()
	logger := logging.New(f, cfg.Logging.Level)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	screen := tui.NewScreen(ctx, logger)
	coord := newCoordinator(cfg, table.New(), screen, screen, viewer.NewAlertNotifier(db, nil, logger), logger)
	defer coord.Stop()

	go func() {
		if err := coord.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("viewer failed to start", "error", err)
		}
	}()

	err = screen.Run()
	cancel()
	return err
}
