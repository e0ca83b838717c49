// Package tui is a terminal rendition of the viewer: a dataset dropdown, a
// sort button and the event table.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/models"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

// Screen implements viewer.Controls and viewer.Publisher on top of tview.
type Screen struct {
	app      *tview.Application
	layout   *tview.Flex
	selector *tview.DropDown
	sortBtn  *tview.Button
	grid     *tview.Table
	status   *tview.TextView

	ctx    context.Context
	logger *slog.Logger

	mu       sync.RWMutex
	onChange func(ctx context.Context, value string) error
	onClick  func(ctx context.Context) error
	latest   *models.ViewSnapshot

	// dirty has room for one pending redraw signal.
	dirty chan struct{}
}

func NewScreen(ctx context.Context, logger *slog.Logger) *Screen {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Screen{
		app:    tview.NewApplication(),
		ctx:    ctx,
		logger: logger,
		dirty:  make(chan struct{}, 1),
	}

	options := make([]string, len(dataset.Keys))
	for i, k := range dataset.Keys {
		options[i] = k.String()
	}
	s.selector = tview.NewDropDown().
		SetLabel("Dataset: ").
		SetOptions(options, nil).
		SetCurrentOption(0)
	s.selector.SetSelectedFunc(func(text string, _ int) {
		go s.change(text)
	})

	s.sortBtn = tview.NewButton("Sort").SetSelectedFunc(func() {
		go s.click()
	})

	s.grid = tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false)
	s.grid.SetBorder(true).SetTitle(" Events ").SetTitleAlign(tview.AlignLeft)

	s.status = tview.NewTextView().SetDynamicColors(true)
	s.status.SetText("Loading data...")

	controls := tview.NewFlex().
		AddItem(s.selector, 0, 1, true).
		AddItem(s.sortBtn, 10, 0, false)

	s.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(controls, 1, 0, true).
		AddItem(s.grid, 0, 1, false).
		AddItem(s.status, 1, 0, false)

	focusables := []tview.Primitive{s.selector, s.sortBtn, s.grid}
	s.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyTab:
			s.cycleFocus(focusables)
			return nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && !s.selector.HasFocus():
			s.app.Stop()
			return nil
		}
		return ev
	})

	return s
}

func (s *Screen) cycleFocus(order []tview.Primitive) {
	current := s.app.GetFocus()
	for i, p := range order {
		if p == current {
			s.app.SetFocus(order[(i+1)%len(order)])
			return
		}
	}
	s.app.SetFocus(order[0])
}

func (s *Screen) BindDatasetSelect(fn func(ctx context.Context, value string) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
	return true
}

func (s *Screen) BindSortButton(fn func(ctx context.Context) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClick = fn
	return true
}

func (s *Screen) change(value string) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn == nil {
		return
	}
	if err := fn(s.ctx, value); err != nil {
		s.logger.Warn("dataset change failed", "value", value, "error", err)
	}
}

func (s *Screen) click() {
	s.mu.RLock()
	fn := s.onClick
	s.mu.RUnlock()
	if fn == nil {
		return
	}
	if err := fn(s.ctx); err != nil {
		s.logger.Warn("sort failed", "error", err)
	}
}

// Broadcast records the snapshot and signals a redraw. It never waits on
// the terminal, so a screen that is not running cannot stall the caller.
func (s *Screen) Broadcast(snap *models.ViewSnapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Screen) pending() *models.ViewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// redraw pushes the latest snapshot into the app until stopped closes.
func (s *Screen) redraw(stopped <-chan struct{}) {
	for {
		select {
		case <-stopped:
			return
		case <-s.dirty:
			if snap := s.pending(); snap != nil {
				s.app.QueueUpdateDraw(func() { s.render(snap) })
			}
		}
	}
}

func (s *Screen) render(snap *models.ViewSnapshot) {
	s.grid.Clear()
	for col, h := range snap.Header {
		s.grid.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold))
	}
	for r, row := range snap.Rows {
		for col, text := range row {
			s.grid.SetCell(r+1, col, tview.NewTableCell(text).SetExpansion(1))
		}
	}

	switch snap.State {
	case viewer.StateFailed.String():
		s.status.SetText("[red]" + viewer.LoadFailureMessage)
	case viewer.StateReady.String():
		s.status.SetText(fmt.Sprintf("%s: %d rows  [gray](tab: next control, q: quit)", snap.Dataset, len(snap.Rows)))
	default:
		s.status.SetText("Loading data...")
	}
}

// Run draws the screen until ctx is done or the user quits.
func (s *Screen) Run() error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-s.ctx.Done():
			s.app.Stop()
		case <-stopped:
		}
	}()
	go s.redraw(stopped)

	return s.app.SetRoot(s.layout, true).SetFocus(s.selector).Run()
}
