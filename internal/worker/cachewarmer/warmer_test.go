package cachewarmer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/infra/storage/schedulecache"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/logger"
)

type stubRoster struct {
	roster domain.Roster
}

func (s stubRoster) Roster(context.Context) (domain.Roster, error) {
	return s.roster, nil
}

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetMasterSchedule(_ context.Context, masterID string) ([]domain.BookingRecord, error) {
	args := m.Called(masterID)
	records, _ := args.Get(0).([]domain.BookingRecord)
	return records, args.Error(1)
}

func (m *mockClient) GetSchedules(_ context.Context) ([]domain.BookingRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]domain.BookingRecord)
	return records, args.Error(1)
}

type mockPruner struct {
	mock.Mock
}

func (m *mockPruner) DeleteOlderThan(_ context.Context, maxAge time.Duration) (int64, error) {
	args := m.Called(maxAge)
	return args.Get(0).(int64), args.Error(1)
}

func TestWarm_RefreshesEveryRosterMaster(t *testing.T) {
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	client := &mockClient{}
	client.On("GetSchedules").Return([]domain.BookingRecord{
		{MasterID: "m1", Date: date, Kind: domain.KindOffline},
	}, nil).Once()

	cache := schedulecache.NewMemoryCache()
	fetcher := schedules.NewService(schedules.NewDefaultChain(client, 2), cache, nil, nil, schedules.Config{BaseDelay: 0})
	pruner := &mockPruner{}
	pruner.On("DeleteOlderThan", 48*time.Hour).Return(int64(3), nil).Once()

	w := NewWarmer(stubRoster{roster: domain.NewRoster("m1", "m2")}, fetcher, pruner, 48*time.Hour, time.Minute, logger.NewNop())
	stats, err := w.Warm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{Masters: 2, Source: schedules.SourceRemote, Pruned: 3}, stats)

	for _, id := range []string{"m1", "m2"} {
		_, err := cache.Get(context.Background(), id)
		assert.NoError(t, err, "cache entry for %s", id)
	}
	pruner.AssertExpectations(t)
}

func TestWarm_DegradedStillSucceeds(t *testing.T) {
	client := &mockClient{}
	client.On("GetSchedules").Return(nil, scheduleservice.ErrEndpointUnavailable)
	client.On("GetMasterSchedule", "m1").Return(nil, scheduleservice.ErrMasterNotFound)

	fetcher := schedules.NewService(schedules.NewDefaultChain(client, 1), schedulecache.NewMemoryCache(), nil, nil, schedules.Config{BaseDelay: 0})
	w := NewWarmer(stubRoster{roster: domain.NewRoster("m1")}, fetcher, nil, 0, 0, logger.NewNop())

	stats, err := w.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedules.SourceEmpty, stats.Source)
}

func TestStart_InvalidSchedule(t *testing.T) {
	w := NewWarmer(stubRoster{}, nil, nil, 0, 0, logger.NewNop())
	assert.Error(t, w.Start("not a cron"))
}

func TestStartStop(t *testing.T) {
	w := NewWarmer(stubRoster{}, nil, nil, 0, 0, logger.NewNop())
	require.NoError(t, w.Start("@every 1h"))

	select {
	case <-w.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop")
	}
}
