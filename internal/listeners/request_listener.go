package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"asset-desk/internal/events"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/eventbus"
	"asset-desk/pkg/metrics"
)

// RequestListener сбрасывает кеш дашбордов и обновляет метрики
// после изменения заявок.
type RequestListener struct {
	cacheRepo repositories.CacheRepositoryInterface
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewRequestListener(cacheRepo repositories.CacheRepositoryInterface, m *metrics.Metrics, logger *zap.Logger) *RequestListener {
	return &RequestListener{cacheRepo: cacheRepo, metrics: m, logger: logger}
}

// Register подписывает слушателя на события заявок.
func (l *RequestListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreated, l.HandleRequestCreated)
	bus.Subscribe(events.RequestDecided, l.HandleRequestDecided)
}

func (l *RequestListener) HandleRequestCreated(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestCreatedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	l.metrics.RequestsCreated.WithLabelValues(event.IssueType).Inc()
	return l.invalidate(ctx, event.EmployeeID)
}

func (l *RequestListener) HandleRequestDecided(ctx context.Context, e eventbus.Event) error {
	event, ok := e.(events.RequestDecidedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	l.metrics.Decisions.WithLabelValues(event.NewStatus).Inc()
	l.logger.Info("Решение по заявке",
		zap.Uint64("requestID", event.RequestID),
		zap.Uint64("actorID", event.ActorID),
		zap.String("from", event.OldStatus),
		zap.String("to", event.NewStatus),
		zap.String("assetStatus", event.AssetStatus),
	)
	return l.invalidate(ctx, event.EmployeeID)
}

// invalidate переводит кеш дашбордов на новое поколение. До запуска
// слушателя после коммита дашборд может отдавать прежние цифры;
// значение, посчитанное до коммита, в новое поколение не попадает.
func (l *RequestListener) invalidate(ctx context.Context, employeeID uint64) error {
	if err := repositories.InvalidateDashboards(ctx, l.cacheRepo); err != nil {
		return fmt.Errorf("не удалось сбросить кеш дашборда сотрудника %d: %w", employeeID, err)
	}
	l.metrics.CacheInvalidation.Inc()
	return nil
}
