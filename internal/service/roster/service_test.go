package roster

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/logger"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetMasters(_ context.Context) ([]domain.Master, error) {
	args := m.Called()
	masters, _ := args.Get(0).([]domain.Master)
	return masters, args.Error(1)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

var masters = []domain.Master{
	{ID: "m1", Name: "Anna", Active: true},
	{ID: "m2", Name: "Binh", Active: true},
	{ID: "m3", Name: "Chi", Active: false},
}

func TestRoster_ActiveMastersOnly(t *testing.T) {
	client := &mockClient{}
	client.On("GetMasters").Return(masters, nil).Once()

	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 3})
	r, err := svc.Roster(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2"}, r.IDs())
}

func TestRoster_RetriesTransient(t *testing.T) {
	client := &mockClient{}
	client.On("GetMasters").Return(nil, fmt.Errorf("%w: 502", scheduleservice.ErrTransient)).Once()
	client.On("GetMasters").Return(masters, nil).Once()

	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 3})
	r, err := svc.Roster(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, r.Size())
	client.AssertNumberOfCalls(t, "GetMasters", 2)
}

func TestRoster_FallsBackToLastKnown(t *testing.T) {
	client := &mockClient{}
	client.On("GetMasters").Return(masters, nil).Once()
	client.On("GetMasters").Return(nil, scheduleservice.ErrEndpointUnavailable)

	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 2})
	_, err := svc.Roster(context.Background())
	require.NoError(t, err)

	r, err := svc.Roster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, r.IDs())
}

func TestRoster_EmptyWhenNothingKnown(t *testing.T) {
	client := &mockClient{}
	client.On("GetMasters").Return(nil, scheduleservice.ErrInvalidResponse)

	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 2})
	r, err := svc.Roster(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, r.Size())
	client.AssertNumberOfCalls(t, "GetMasters", 1)
}

func TestRoster_TTL(t *testing.T) {
	client := &mockClient{}
	client.On("GetMasters").Return(masters, nil)

	clock := &fakeClock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 1, TTL: time.Minute})
	svc.SetTimeProvider(clock)

	_, _ = svc.Roster(context.Background())
	clock.now = clock.now.Add(30 * time.Second)
	_, _ = svc.Roster(context.Background())
	client.AssertNumberOfCalls(t, "GetMasters", 1)

	clock.now = clock.now.Add(time.Minute)
	_, _ = svc.Roster(context.Background())
	client.AssertNumberOfCalls(t, "GetMasters", 2)
}

func TestRoster_Canceled(t *testing.T) {
	client := &mockClient{}
	ctx, cancel := context.WithCancel(context.Background())
	client.On("GetMasters").Run(func(mock.Arguments) { cancel() }).Return(nil, context.Canceled)

	svc := NewService(client, logger.NewNop(), Config{MaxAttempts: 3})
	_, err := svc.Roster(ctx)

	assert.ErrorIs(t, err, ErrCanceled)
}
