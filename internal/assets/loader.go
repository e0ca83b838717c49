// Package assets fetches the viewer's GeoJSON inputs over HTTP or from disk.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mr1hm/go-quake-viewer/internal/models"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// maxDocumentSize caps a single asset body.
const maxDocumentSize = 64 << 20

// Sources names where each of the three assets lives: an http(s) URL, a
// file:// URL or a plain path.
type Sources struct {
	Earthquakes string
	Region      string
	Tsunami     string
}

// Bundle holds the three loaded collections.
type Bundle struct {
	Earthquakes models.FeatureCollection
	Region      models.FeatureCollection
	Tsunami     models.FeatureCollection
}

type Loader struct {
	client *http.Client
	logger *slog.Logger
}

func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// LoadAll fetches the three assets concurrently. The first failure cancels the
// others and is returned; nothing partial is handed back.
func (l *Loader) LoadAll(ctx context.Context, src Sources) (Bundle, error) {
	var b Bundle

	g, gctx := errgroup.WithContext(ctx)
	load := func(name, location string, dst *models.FeatureCollection) {
		g.Go(func() error {
			fc, err := l.Fetch(gctx, location)
			if err != nil {
				return fmt.Errorf("failed to load %s asset: %w", name, err)
			}
			*dst = fc
			l.logger.Debug("asset loaded", "asset", name, "location", location, "features", fc.Len())
			return nil
		})
	}
	load("earthquakes", src.Earthquakes, &b.Earthquakes)
	load("region", src.Region, &b.Region)
	load("tsunami", src.Tsunami, &b.Tsunami)

	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// Fetch loads and decodes one GeoJSON document.
func (l *Loader) Fetch(ctx context.Context, location string) (models.FeatureCollection, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = l.fetchHTTP(ctx, location)
	default:
		data, err = readFile(strings.TrimPrefix(location, "file://"))
	}
	if err != nil {
		return models.FeatureCollection{}, err
	}

	fc, err := models.ParseFeatureCollection(data)
	if err != nil {
		return models.FeatureCollection{}, fmt.Errorf("%s: %w", location, err)
	}
	return fc, nil
}

// CloseIdleConnections releases pooled HTTP connections.
func (l *Loader) CloseIdleConnections() {
	l.client.CloseIdleConnections()
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: %d - status: %s", url, ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("error reading resp.Body: %w", err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("empty asset path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading asset file: %w", err)
	}
	return data, nil
}
