package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-viewer/internal/assets"
	"github.com/mr1hm/go-quake-viewer/internal/config"
	"github.com/mr1hm/go-quake-viewer/internal/fields"
	"github.com/mr1hm/go-quake-viewer/internal/mapview"
	"github.com/mr1hm/go-quake-viewer/internal/observability"
	"github.com/mr1hm/go-quake-viewer/internal/table"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

var (
	earthquakesURL string
	regionURL      string
	tsunamiURL     string
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "quake-table",
	Short: "Earthquake and tsunami tables in the terminal",
	Long: `quake-table loads the earthquake, region and tsunami GeoJSON assets and shows
the event table either as plain text (print) or as an interactive terminal view (tui).

Asset locations default to the EARTHQUAKES_URL, REGION_URL and TSUNAMI_URL
environment variables (or .env) and can be overridden per run.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&earthquakesURL, "earthquakes", "", "earthquakes GeoJSON URL or path")
	rootCmd.PersistentFlags().StringVar(&regionURL, "region", "", "region GeoJSON URL or path")
	rootCmd.PersistentFlags().StringVar(&tsunamiURL, "tsunami", "", "tsunami GeoJSON URL or path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if earthquakesURL != "" {
		cfg.Assets.EarthquakesURL = earthquakesURL
	}
	if regionURL != "" {
		cfg.Assets.RegionURL = regionURL
	}
	if tsunamiURL != "" {
		cfg.Assets.TsunamiURL = tsunamiURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	fields.SetLocation(cfg.Location())
	return cfg, nil
}

// newCoordinator builds a coordinator over a headless, already-ready map.
func newCoordinator(cfg *config.Config, t *table.Table, controls viewer.Controls, pub viewer.Publisher, notifier viewer.Notifier, logger *slog.Logger) *viewer.Coordinator {
	style := mapview.NewStyle()
	style.MarkReady()

	return viewer.New(viewer.Options{
		Loader: assets.NewLoader(cfg.Assets.FetchTimeout, logger),
		Sources: assets.Sources{
			Earthquakes: cfg.Assets.EarthquakesURL,
			Region:      cfg.Assets.RegionURL,
			Tsunami:     cfg.Assets.TsunamiURL,
		},
		Surface:   style,
		Table:     t,
		Controls:  controls,
		Notifier:  notifier,
		Publisher: pub,
		Metrics:   observability.NewMetricsWith(prometheus.NewRegistry()),
		Clock:     clockwork.NewRealClock(),
		Logger:    logger,
	})
}
