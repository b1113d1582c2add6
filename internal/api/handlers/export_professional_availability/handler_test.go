package export_professional_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getProfessionalAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_professional_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type stubUseCase struct {
	resp *getProfessionalAvailability.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *getProfessionalAvailability.Request) (*getProfessionalAvailability.Response, error) {
	return s.resp, s.err
}

const validTarget = "/api/v1/availability/professional-schedule.ics?professional_id=7&service_id=3&date=2025-06-10"

func serve(uc *stubUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.Nop())
	h.clock = func() time.Time { return time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_ExportsOneEventPerSlot(t *testing.T) {
	uc := &stubUseCase{resp: &getProfessionalAvailability.Response{
		Date:           time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		ProfessionalID: 7,
		ServiceID:      3,
		Timezone:       "Europe/Moscow",
		Slots: []getProfessionalAvailability.Slot{
			{Start: "09:00", End: "09:30", StartsAt: time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC), DurationMinutes: 30},
			{Start: "11:00", End: "11:30", StartsAt: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), DurationMinutes: 30},
		},
	}}

	rec := serve(uc, validTarget)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "availability-7-2025-06-10.ics")

	cal, err := ical.NewDecoder(rec.Body).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	start, err := events[1].DateTimeStart(nil)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)))

	end, err := events[1].DateTimeEnd(nil)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)))

	uid0, err := events[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	uid1, err := events[1].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.NotEqual(t, uid0, uid1)
}

func TestHandle_NoSlots(t *testing.T) {
	uc := &stubUseCase{resp: &getProfessionalAvailability.Response{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), ProfessionalID: 7}}

	rec := serve(uc, validTarget)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		err          error
		expectStatus int
	}{
		{name: "bad query", target: "/x?professional_id=7&date=2025-06-10", expectStatus: http.StatusBadRequest},
		{name: "service not offered", target: validTarget, err: getProfessionalAvailability.ErrProfessionalServiceNotFound, expectStatus: http.StatusNotFound},
		{name: "professional not found", target: validTarget, err: getProfessionalAvailability.ErrProfessionalNotFound, expectStatus: http.StatusBadRequest},
		{name: "internal", target: validTarget, err: getProfessionalAvailability.ErrInternal, expectStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.expectStatus, rec.Code)
		})
	}
}
