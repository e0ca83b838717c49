package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/mapview"
	"github.com/mr1hm/go-quake-viewer/internal/models"
	"github.com/mr1hm/go-quake-viewer/internal/repository"
	"github.com/mr1hm/go-quake-viewer/internal/stream"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

// View is the read side of the coordinator.
type View interface {
	State() viewer.State
	Snapshot() models.ViewSnapshot
	Registry() *dataset.Registry
}

// MapDocument exposes the registered map sources and layers.
type MapDocument interface {
	Document() mapview.Document
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MapSettings are the client-side map defaults.
type MapSettings struct {
	Token  string
	Style  string
	Center [2]float64
	Zoom   float64
}

type Handler struct {
	view        View
	controls    *Controls
	style       MapDocument
	alerts      repository.AlertRepository
	db          Pinger
	broadcaster *stream.Broadcaster
	mapSettings MapSettings
	logger      *slog.Logger
}

type Deps struct {
	View        View
	Controls    *Controls
	Style       MapDocument
	Alerts      repository.AlertRepository
	DB          Pinger // optional; checked by /health
	Broadcaster *stream.Broadcaster
	Map         MapSettings
	Logger      *slog.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Handler{
		view:        d.View,
		controls:    d.Controls,
		style:       d.Style,
		alerts:      d.Alerts,
		db:          d.DB,
		broadcaster: d.Broadcaster,
		mapSettings: d.Map,
		logger:      d.Logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.page)
	r.POST("/dataset", h.submitDataset)
	r.POST("/sort", h.submitSort)

	api := r.Group("/api")
	api.GET("/view", h.getView)
	api.POST("/dataset", h.postDataset)
	api.POST("/sort", h.postSort)
	api.GET("/map", h.getMap)
	api.GET("/datasets/:key", h.getDataset)
	api.GET("/alerts", h.getAlerts)
	api.GET("/events", h.events)

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) page(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplate.Execute(c.Writer, newPageData(h.view.Snapshot())); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

func (h *Handler) submitDataset(c *gin.Context) {
	if err := h.controls.Change(c.Request.Context(), c.PostForm("dataset")); err != nil {
		c.String(statusFor(err), "dataset change failed: %v", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) submitSort(c *gin.Context) {
	if err := h.controls.Click(c.Request.Context()); err != nil {
		c.String(statusFor(err), "sort failed: %v", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type datasetRequest struct {
	Dataset string `json:"dataset" binding:"required"`
}

func (h *Handler) postDataset(c *gin.Context) {
	var req datasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"dataset\": \"...\"}"})
		return
	}
	if err := h.controls.Change(c.Request.Context(), req.Dataset); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.view.Snapshot())
}

func (h *Handler) postSort(c *gin.Context) {
	if err := h.controls.Click(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.view.Snapshot())
}

func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.Snapshot())
}

func (h *Handler) getMap(c *gin.Context) {
	doc := h.style.Document()
	c.JSON(http.StatusOK, gin.H{
		"token":   h.mapSettings.Token,
		"style":   h.mapSettings.Style,
		"center":  h.mapSettings.Center,
		"zoom":    h.mapSettings.Zoom,
		"sources": doc.Sources,
		"layers":  doc.Layers,
	})
}

func (h *Handler) getDataset(c *gin.Context) {
	key, ok := dataset.ParseKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown dataset"})
		return
	}
	fc, ok := h.view.Registry().Collection(key)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": viewer.ErrNotReady.Error()})
		return
	}
	doc, err := fc.Document()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode dataset"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", doc)
}

func (h *Handler) getAlerts(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // Default to 20 alerts if limit param not supplied
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}
	filter.Source = c.Query("source")

	alerts, err := h.alerts.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch alerts",
		})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// events streams a "view" event with the current snapshot, then one per change,
// until the client goes away or the broadcaster closes.
func (h *Handler) events(c *gin.Context) {
	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	current := h.view.Snapshot()
	c.SSEvent("view", current)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("view", s)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("health check: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"viewer": h.view.State().String(),
				"error":  "database unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "viewer": h.view.State().String()})
}

func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	// ErrNotReady before load completes, worker.ErrStopped during shutdown.
	return http.StatusServiceUnavailable
}
