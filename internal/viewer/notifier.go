package viewer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-viewer/internal/models"
	"github.com/mr1hm/go-quake-viewer/internal/repository"
)

// LoadFailureMessage is what the operator is shown when initialization aborts.
const LoadFailureMessage = "Error loading data. Check console for details."

// Notifier raises an operator-facing alert.
type Notifier interface {
	Notify(ctx context.Context, a models.Alert) error
}

// LoadFailure builds the alert raised when asset loading fails.
func LoadFailure(err error) models.Alert {
	return models.Alert{
		Source:   "loader",
		Severity: models.AlertSeverityCritical,
		Message:  LoadFailureMessage,
		Detail:   err.Error(),
	}
}

// AlertNotifier logs every alert and, when a repository is set, persists it.
type AlertNotifier struct {
	repo   repository.AlertRepository
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewAlertNotifier(repo repository.AlertRepository, clock clockwork.Clock, logger *slog.Logger) *AlertNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertNotifier{repo: repo, clock: clock, logger: logger}
}

func (n *AlertNotifier) Notify(ctx context.Context, a models.Alert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = n.clock.Now()
	}

	n.logger.Error(a.Message,
		"alert_id", a.ID,
		"source", a.Source,
		"severity", a.Severity,
		"detail", a.Detail,
	)

	if n.repo == nil {
		return nil
	}
	return n.repo.AddAlert(ctx, &a)
}
