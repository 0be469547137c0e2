package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"toolrent-console/internal/config"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/metrics"
	"toolrent-console/internal/querycache"
)

type MockCleaner struct {
	mock.Mock
}

func (m *MockCleaner) CleanupExpired(ctx context.Context) (domain.CleanupResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CleanupResult), args.Error(1)
}

func TestJobRunner_CleanupExpiredBookings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cleaner := new(MockCleaner)
		cleaner.On("CleanupExpired", mock.Anything).Return(domain.CleanupResult{ExpiredCount: 2}, nil).Once()
		before := testutil.ToFloat64(metrics.JobRuns.WithLabelValues(CleanupExpiredBookingsJob, "success"))

		jr := NewJobRunner(cleaner, querycache.New(), &config.Config{})
		require.NoError(t, jr.Run(CleanupExpiredBookingsJob))

		after := testutil.ToFloat64(metrics.JobRuns.WithLabelValues(CleanupExpiredBookingsJob, "success"))
		assert.Equal(t, before+1, after)
		cleaner.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		cleaner := new(MockCleaner)
		cleaner.On("CleanupExpired", mock.Anything).Return(domain.CleanupResult{}, errors.New("Access denied")).Once()
		before := testutil.ToFloat64(metrics.JobRuns.WithLabelValues(CleanupExpiredBookingsJob, "failure"))

		jr := NewJobRunner(cleaner, querycache.New(), &config.Config{})
		assert.Error(t, jr.CleanupExpiredBookings())

		after := testutil.ToFloat64(metrics.JobRuns.WithLabelValues(CleanupExpiredBookingsJob, "failure"))
		assert.Equal(t, before+1, after)
	})

	t.Run("Panic is recovered", func(t *testing.T) {
		cleaner := new(MockCleaner)
		cleaner.On("CleanupExpired", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

		jr := NewJobRunner(cleaner, querycache.New(), &config.Config{})
		err := jr.CleanupExpiredBookings()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "panicked")
	})
}

func TestJobRunner_RefreshQueries(t *testing.T) {
	cache := querycache.New()
	_, err := querycache.Fetch(context.Background(), cache, querycache.Key{"admin-tools"}, func(context.Context) (int, error) {
		return 1, nil
	})
	require.NoError(t, err)

	jr := NewJobRunner(new(MockCleaner), cache, &config.Config{})
	require.NoError(t, jr.Run(RefreshQueriesJob))
	assert.Zero(t, cache.Len())
}

func TestJobRunner_Run(t *testing.T) {
	jr := NewJobRunner(new(MockCleaner), querycache.New(), &config.Config{})
	assert.Equal(t, []string{CleanupExpiredBookingsJob, RefreshQueriesJob}, jr.Names())
	assert.ErrorIs(t, jr.Run("send-invoices"), ErrUnknownJob)
}
