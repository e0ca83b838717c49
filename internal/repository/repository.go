package repository

import (
	"context"
	"time"

	"github.com/mr1hm/go-quake-viewer/internal/models"
)

type Filter struct {
	Limit  int
	Since  *time.Time
	Source string
}

// AlertRepository persists operator-facing alerts.
type AlertRepository interface {
	AddAlert(ctx context.Context, a *models.Alert) error
	ListAlerts(ctx context.Context, opts Filter) ([]models.Alert, error)
}
