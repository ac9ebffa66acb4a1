package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/logger"
)

// Обработчик принимает настоящий use case
var _ SlotsResolver = (*getAvailableSlots.UseCase)(nil)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func TestHandle_OK(t *testing.T) {
	uc := &mockUseCase{}
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	master := "m1"

	uc.On("Execute", &getAvailableSlots.Request{SessionID: "s1", Date: date, MasterID: &master}).Return(&getAvailableSlots.Response{
		Date:     date,
		MasterID: &master,
		Slots: []domain.SlotAvailability{
			{Slot: domain.SlotMorning, Available: false, Reason: domain.ReasonBookedBySameMaster},
			{Slot: domain.SlotLateMorning, Available: true, Reason: domain.ReasonNone},
			{Slot: domain.SlotEarlyAfternoon, Available: true, Reason: domain.ReasonNone},
			{Slot: domain.SlotAfternoon, Available: true, Reason: domain.ReasonNone},
		},
		DayAvailable: true,
		Source:       "cache",
		Degraded:     true,
		StaleMasters: []string{"m1"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?date=2025-03-20&masterId=m1", nil)
	req.Header.Set("X-Session-ID", "s1")
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2025-03-20", body.Date)
	assert.True(t, body.Degraded)
	assert.Equal(t, "cache", body.Source)
	require.Len(t, body.Slots, 4)
	assert.Equal(t, AvailableSlot{StartTime: "07:00", EndTime: "09:15", Available: false, Reason: "booked-by-same-master"}, body.Slots[0])
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		ucErr      error
		wantStatus int
	}{
		{name: "missing date", url: "/api/v1/available-slots", wantStatus: http.StatusBadRequest},
		{name: "bad date", url: "/api/v1/available-slots?date=20.03.2025", wantStatus: http.StatusBadRequest},
		{name: "invalid input", url: "/api/v1/available-slots?date=2025-03-20&masterId=ALL", ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "superseded", url: "/api/v1/available-slots?date=2025-03-20", ucErr: getAvailableSlots.ErrSuperseded, wantStatus: http.StatusConflict},
		{name: "canceled", url: "/api/v1/available-slots?date=2025-03-20", ucErr: getAvailableSlots.ErrCanceled, wantStatus: statusClientClosedRequest},
		{name: "internal", url: "/api/v1/available-slots?date=2025-03-20", ucErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything).Return(nil, tt.ucErr).Once()
			}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
