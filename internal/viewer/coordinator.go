// Package viewer coordinates loading, the initial render, and user-driven
// dataset switches and sorts across the map surface and the table.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mr1hm/go-quake-viewer/internal/assets"
	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/mapview"
	"github.com/mr1hm/go-quake-viewer/internal/models"
	"github.com/mr1hm/go-quake-viewer/internal/observability"
	"github.com/mr1hm/go-quake-viewer/internal/table"
	"github.com/mr1hm/go-quake-viewer/internal/worker"
)

var ErrNotReady = errors.New("viewer is not ready")

type State int32

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader fetches the three input assets, failing on the first error.
type Loader interface {
	LoadAll(ctx context.Context, src assets.Sources) (assets.Bundle, error)
}

// Controls are the document's interactive controls. Each Bind reports false
// when the control is not present.
type Controls interface {
	BindDatasetSelect(onChange func(ctx context.Context, value string) error) bool
	BindSortButton(onClick func(ctx context.Context) error) bool
}

// Publisher receives a snapshot after every change to the view.
type Publisher interface {
	Broadcast(s *models.ViewSnapshot)
}

type visibilityReporter interface {
	VisibilityMap() map[string]string
}

type Options struct {
	Loader    Loader
	Sources   assets.Sources
	Surface   mapview.Surface
	Table     *table.Table // nil when the document has no table
	Controls  Controls     // nil when the document has no controls
	Notifier  Notifier
	Publisher Publisher
	Metrics   *observability.Metrics
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

type Coordinator struct {
	loader    Loader
	sources   assets.Sources
	surface   mapview.Surface
	table     *table.Table
	controls  Controls
	notifier  Notifier
	publisher Publisher
	metrics   *observability.Metrics
	clock     clockwork.Clock
	logger    *slog.Logger

	registry *dataset.Registry
	renderer *table.Renderer
	loop     *worker.Loop

	state   atomic.Int32
	view    atomic.Pointer[models.ViewSnapshot] // rebuilt on the loop after every change
	mu      sync.RWMutex
	loadErr error
}

func New(opts Options) *Coordinator {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsWith(prometheus.NewRegistry())
	}
	if opts.Notifier == nil {
		opts.Notifier = NewAlertNotifier(nil, opts.Clock, opts.Logger)
	}

	registry := dataset.NewRegistry()
	c := &Coordinator{
		loader:    opts.Loader,
		sources:   opts.Sources,
		surface:   opts.Surface,
		table:     opts.Table,
		controls:  opts.Controls,
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		clock:     opts.Clock,
		logger:    opts.Logger,
		registry:  registry,
		renderer:  table.NewRenderer(opts.Table, registry),
		loop:      worker.NewLoop(16),
	}
	initial := c.buildSnapshot()
	c.view.Store(&initial)
	return c
}

// Start loads the assets, waits for the map surface, and enters Ready. On a
// load failure the alert is raised, the view stays non-interactive and the
// error is returned. Start must be called once.
func (c *Coordinator) Start(ctx context.Context) error {
	c.loop.Start(ctx)

	began := c.clock.Now()
	bundle, err := c.loader.LoadAll(ctx, c.sources)
	c.metrics.LoadDuration.Observe(c.clock.Since(began).Seconds())
	if errors.Is(err, context.Canceled) {
		c.logger.Info("asset load canceled")
		return err
	}
	if err != nil {
		c.fail(ctx, err)
		return fmt.Errorf("loading assets: %w", err)
	}
	c.logger.Info("assets loaded",
		"earthquakes", bundle.Earthquakes.Len(),
		"region", bundle.Region.Len(),
		"tsunami", bundle.Tsunami.Len(),
		"elapsed", c.clock.Since(began),
	)

	select {
	case <-c.surface.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	var readyErr error
	if err := c.loop.Do(ctx, func() { readyErr = c.enterReady(bundle) }); err != nil {
		return err
	}
	if readyErr != nil {
		c.fail(ctx, readyErr)
		return readyErr
	}
	return nil
}

// Stop shuts the event loop down; bound controls stop working afterwards.
func (c *Coordinator) Stop() {
	c.loop.Stop()
}

func (c *Coordinator) enterReady(b assets.Bundle) error {
	c.registry.Load(b.Earthquakes, b.Tsunami)
	c.registry.SetActive(string(dataset.Earthquakes))

	if err := c.registerMap(b); err != nil {
		return fmt.Errorf("registering map layers: %w", err)
	}

	c.renderer.SetColumnLabel()
	c.render()

	c.state.Store(int32(StateReady))
	c.metrics.ViewerReady.Set(1)
	for asset, fc := range map[string]models.FeatureCollection{
		"earthquakes": b.Earthquakes,
		"region":      b.Region,
		"tsunami":     b.Tsunami,
	} {
		c.metrics.AssetFeatures.WithLabelValues(asset).Set(float64(fc.Len()))
	}

	c.bindControls()
	c.publish()
	c.logger.Info("viewer ready", "dataset", c.registry.Active(), "rows", c.rowCount())
	return nil
}

func (c *Coordinator) registerMap(b assets.Bundle) error {
	regs := []struct {
		source string
		fc     models.FeatureCollection
		layer  mapview.Layer
	}{
		{mapview.RegionSource, b.Region, mapview.RegionFill()},
		{mapview.EarthquakeSource, b.Earthquakes, mapview.EarthquakeMarkers()},
		{mapview.TsunamiSource, b.Tsunami, mapview.TsunamiMarkers()},
	}
	for _, r := range regs {
		doc, err := r.fc.Document()
		if err != nil {
			return err
		}
		if err := mapview.EnsureSource(c.surface, r.source, doc); err != nil {
			return err
		}
		if err := mapview.EnsureLayer(c.surface, r.layer); err != nil {
			return err
		}
	}
	return c.surface.SetVisibility(mapview.TsunamiLayer, mapview.Hidden)
}

func (c *Coordinator) bindControls() {
	if c.controls == nil {
		c.logger.Debug("no document controls to bind")
		return
	}
	if !c.controls.BindDatasetSelect(c.SelectDataset) {
		c.logger.Debug("dataset selector not present")
	}
	if !c.controls.BindSortButton(c.SortTable) {
		c.logger.Debug("sort button not present")
	}
}

// SelectDataset handles a dataset selector change. Unknown values are ignored.
func (c *Coordinator) SelectDataset(ctx context.Context, value string) error {
	if c.State() != StateReady {
		return ErrNotReady
	}
	return c.loop.Do(ctx, func() { c.onDatasetChange(value) })
}

// SortTable handles a sort button click.
func (c *Coordinator) SortTable(ctx context.Context) error {
	if c.State() != StateReady {
		return ErrNotReady
	}
	return c.loop.Do(ctx, c.onSortClick)
}

func (c *Coordinator) onDatasetChange(value string) {
	if !c.registry.SetActive(value) {
		c.metrics.DatasetChanges.WithLabelValues("unknown", "rejected").Inc()
		c.logger.Warn("ignoring unknown dataset", "value", value, "active", c.registry.Active())
		return
	}
	active := c.registry.Active()
	c.metrics.DatasetChanges.WithLabelValues(active.String(), "applied").Inc()

	for _, k := range dataset.Keys {
		v := mapview.Hidden
		if k == active {
			v = mapview.Visible
		}
		if err := c.surface.SetVisibility(mapview.LayerFor(k), v); err != nil {
			c.logger.Error("failed to toggle layer", "layer", mapview.LayerFor(k), "error", err)
		}
	}

	c.renderer.SetColumnLabel()
	c.render()
	c.publish()
	c.logger.Debug("dataset changed", "dataset", active, "rows", c.rowCount())
}

func (c *Coordinator) onSortClick() {
	table.SortDescendingBySecondColumn(c.table)
	c.metrics.TableSorts.Inc()
	c.publish()
}

func (c *Coordinator) render() {
	n := c.renderer.Render(c.registry.ActiveCollection())
	c.metrics.TableRenders.Inc()
	c.metrics.RenderedRows.Set(float64(n))
}

func (c *Coordinator) fail(ctx context.Context, err error) {
	c.mu.Lock()
	c.loadErr = err
	c.mu.Unlock()
	c.state.Store(int32(StateFailed))
	c.metrics.LoadFailures.Inc()
	c.metrics.ViewerReady.Set(0)

	if nerr := c.notifier.Notify(ctx, LoadFailure(err)); nerr != nil {
		c.logger.Error("failed to record alert", "error", nerr)
	}
	c.publish()
}

// publish rebuilds the served snapshot. It runs on the loop, or before any
// handler is bound, so the table and labels it reads are never mid-switch.
func (c *Coordinator) publish() {
	s := c.buildSnapshot()
	c.view.Store(&s)
	if c.publisher != nil {
		c.publisher.Broadcast(&s)
	}
}

func (c *Coordinator) rowCount() int {
	if c.table == nil {
		return 0
	}
	return c.table.Len()
}

func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// LoadError is the error that moved the viewer to StateFailed, if any.
func (c *Coordinator) LoadError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

func (c *Coordinator) Registry() *dataset.Registry {
	return c.registry
}

// Snapshot returns a copy of the view as of the last completed change.
func (c *Coordinator) Snapshot() models.ViewSnapshot {
	return cloneSnapshot(c.view.Load())
}

func cloneSnapshot(v *models.ViewSnapshot) models.ViewSnapshot {
	s := *v
	s.Header = slices.Clone(v.Header)
	s.Rows = make([][]string, len(v.Rows))
	for i, r := range v.Rows {
		s.Rows[i] = slices.Clone(r)
	}
	s.Visibility = maps.Clone(v.Visibility)
	return s
}

func (c *Coordinator) buildSnapshot() models.ViewSnapshot {
	s := models.ViewSnapshot{
		State:       c.State().String(),
		Dataset:     c.registry.Active().String(),
		ColumnLabel: c.registry.ColumnLabel(),
		Rows:        [][]string{},
		Visibility:  map[string]string{},
	}
	if c.table != nil {
		s.Header = c.table.Header()
		for _, r := range c.table.Rows() {
			s.Rows = append(s.Rows, append([]string(nil), r.Cells...))
		}
	}
	if vr, ok := c.surface.(visibilityReporter); ok {
		s.Visibility = vr.VisibilityMap()
	}
	return s
}
