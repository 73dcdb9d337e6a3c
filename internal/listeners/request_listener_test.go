package listeners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-desk/internal/events"
	"asset-desk/internal/repositories"
	"asset-desk/pkg/eventbus"
	"asset-desk/pkg/metrics"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Del(ctx context.Context, key ...string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.Error(1)
}


func TestHandleRequestDecided(t *testing.T) {
	cache := new(mockCache)
	cache.On("Incr", mock.Anything, repositories.DashboardGenerationKey).Return(int64(1), nil).Once()
	m := metrics.NewNop()
	l := NewRequestListener(cache, m, zap.NewNop())

	err := l.HandleRequestDecided(context.Background(), events.RequestDecidedEvent{
		RequestID: 1, EmployeeID: 7, AssetID: 3, ActorID: 1,
		OldStatus: "PENDING", NewStatus: "APPROVED", AssetStatus: "ASSIGNED",
	})
	require.NoError(t, err)
	cache.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Decisions.WithLabelValues("APPROVED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheInvalidation))
}

func TestHandleRequestCreated(t *testing.T) {
	cache := new(mockCache)
	cache.On("Incr", mock.Anything, repositories.DashboardGenerationKey).Return(int64(2), nil).Once()
	m := metrics.NewNop()
	l := NewRequestListener(cache, m, zap.NewNop())

	err := l.HandleRequestCreated(context.Background(), events.RequestCreatedEvent{
		RequestID: 2, EmployeeID: 8, AssetID: 4, IssueType: "HARDWARE",
	})
	require.NoError(t, err)
	cache.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsCreated.WithLabelValues("HARDWARE")))
}

func TestListenerErrors(t *testing.T) {
	t.Run("cache failure", func(t *testing.T) {
		cache := new(mockCache)
		cache.On("Incr", mock.Anything, repositories.DashboardGenerationKey).Return(int64(0), errors.New("redis down"))
		m := metrics.NewNop()
		l := NewRequestListener(cache, m, zap.NewNop())

		err := l.HandleRequestDecided(context.Background(), events.RequestDecidedEvent{EmployeeID: 7, NewStatus: "REJECTED"})
		assert.Error(t, err)
		assert.Equal(t, float64(0), testutil.ToFloat64(m.CacheInvalidation))
	})

	t.Run("wrong event type", func(t *testing.T) {
		cache := new(mockCache)
		l := NewRequestListener(cache, metrics.NewNop(), zap.NewNop())

		err := l.HandleRequestDecided(context.Background(), events.RequestCreatedEvent{EmployeeID: 7})
		assert.Error(t, err)
		cache.AssertNotCalled(t, "Incr", mock.Anything, mock.Anything)
	})
}

func TestRegisterSubscribesToBus(t *testing.T) {
	cache := new(mockCache)
	cache.On("Incr", mock.Anything, repositories.DashboardGenerationKey).Return(int64(1), nil).Once()
	bus := eventbus.New(zap.NewNop())
	NewRequestListener(cache, metrics.NewNop(), zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.RequestDecidedEvent{RequestID: 1, EmployeeID: 7, NewStatus: "APPROVED"})
	bus.Wait()
	cache.AssertExpectations(t)
}
