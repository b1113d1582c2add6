package get_available_professionals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type stubProfessionals struct {
	professionals []*domain.Professional
	err           error
}

func (s *stubProfessionals) ListByService(context.Context, int64) ([]*domain.Professional, error) {
	return s.professionals, s.err
}

type stubServices struct {
	service *domain.Service
	err     error
}

func (s *stubServices) GetByID(context.Context, int64) (*domain.Service, error) {
	return s.service, s.err
}

type stubCompany struct {
	company *domain.Company
}

func (s *stubCompany) GetCompany(context.Context) (*domain.Company, error) {
	return s.company, nil
}

// stubPolicies отдает политику специалиста из byProfessional, иначе ErrPolicyNotFound
type stubPolicies struct {
	byProfessional map[int64]*domain.BookingPolicy
	service        *domain.BookingPolicy
	err            error
}

func (s *stubPolicies) GetPolicyWithHierarchy(_ context.Context, professionalID *int64, _ *int64) (*domain.BookingPolicy, error) {
	if s.err != nil {
		return nil, s.err
	}
	if professionalID != nil {
		if p, ok := s.byProfessional[*professionalID]; ok {
			return p, nil
		}
	}
	if s.service != nil {
		return s.service, nil
	}
	return nil, policyRepo.ErrPolicyNotFound
}

type stubCalculator struct {
	slots map[int64][]domain.AvailableSlot
	errs  map[int64]error
	calls []availability.Params
}

func (s *stubCalculator) Calculate(_ context.Context, p availability.Params) ([]domain.AvailableSlot, error) {
	s.calls = append(s.calls, p)
	if err := s.errs[p.Professional.ID]; err != nil {
		return nil, err
	}
	return s.slots[p.Professional.ID], nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func halfHourSlots(from string, n int) []domain.AvailableSlot {
	start := types.MustParse(from).Minutes()
	slots := make([]domain.AvailableSlot, n)
	for i := range slots {
		s := start + i*30
		slots[i] = domain.AvailableSlot{Start: types.FromMinutes(s), End: types.FromMinutes(s + 30), DurationMinutes: 30}
	}
	return slots
}

type fixture struct {
	professionals *stubProfessionals
	services      *stubServices
	policies      *stubPolicies
	calculator    *stubCalculator
}

func newFixture() *fixture {
	offers := func(id int64, name string) *domain.Professional {
		return &domain.Professional{ID: id, Name: name, IsActive: true, Services: []domain.ProfessionalService{{ServiceID: 3}}}
	}
	anna := offers(7, "Анна")
	anna.Services[0].DurationMinutes = ptr.Ptr(45)

	return &fixture{
		professionals: &stubProfessionals{professionals: []*domain.Professional{
			anna,
			offers(8, "Борис"),
			offers(9, "Вера"),
		}},
		services: &stubServices{service: &domain.Service{
			ID: 3, Name: "Стрижка", DurationMinutes: 30, Price: decimal.NewFromInt(1500), IsActive: true,
		}},
		policies: &stubPolicies{},
		calculator: &stubCalculator{
			slots: map[int64][]domain.AvailableSlot{
				7: halfHourSlots("09:00", 5),
				8: {},
				9: halfHourSlots("14:00", 2),
			},
		},
	}
}

func (f *fixture) useCase(previewSlots int) *UseCase {
	uc := NewUseCase(
		f.professionals,
		f.services,
		&stubCompany{company: &domain.Company{ID: 1, Timezone: "Europe/Moscow"}},
		f.policies,
		f.calculator,
		previewSlots,
		logger.Nop(),
	)
	// 2025-06-09 12:00 MSK
	uc.timeProvider = fixedTime{now: time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)}
	return uc
}

var tomorrow = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestExecute_ReturnsOnlyProfessionalsWithSlots(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase(3).Execute(context.Background(), &Request{ServiceID: 3, Date: tomorrow})

	require.NoError(t, err)
	require.Len(t, resp.Professionals, 2)

	anna := resp.Professionals[0]
	assert.Equal(t, int64(7), anna.ProfessionalID)
	assert.Equal(t, 45, anna.DurationMinutes)
	assert.True(t, anna.Price.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 5, anna.SlotsCount)
	require.Len(t, anna.SlotsPreview, 3)
	assert.Equal(t, types.TimeString("10:00"), anna.SlotsPreview[2].Start)
	assert.Equal(t, time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC), anna.SlotsPreview[0].StartsAt)

	vera := resp.Professionals[1]
	assert.Equal(t, int64(9), vera.ProfessionalID)
	assert.Equal(t, 2, vera.SlotsCount)
	assert.Len(t, vera.SlotsPreview, 2)

	assert.Len(t, f.calculator.calls, 3)
	assert.Equal(t, 45, f.calculator.calls[0].DurationMinutes)
	assert.Equal(t, 30, f.calculator.calls[1].DurationMinutes)
}

func TestExecute_ZeroPreviewKeepsCount(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase(0).Execute(context.Background(), &Request{ServiceID: 3, Date: tomorrow})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Professionals)
	assert.Empty(t, resp.Professionals[0].SlotsPreview)
	assert.Equal(t, 5, resp.Professionals[0].SlotsCount)
}

func TestExecute_OneFailingProfessionalIsSkipped(t *testing.T) {
	f := newFixture()
	f.calculator.errs = map[int64]error{7: availability.ErrInternal}

	resp, err := f.useCase(3).Execute(context.Background(), &Request{ServiceID: 3, Date: tomorrow})

	require.NoError(t, err)
	require.Len(t, resp.Professionals, 1)
	assert.Equal(t, int64(9), resp.Professionals[0].ProfessionalID)
}

func TestExecute_AllProfessionalsFailing(t *testing.T) {
	f := newFixture()
	f.calculator.errs = map[int64]error{7: availability.ErrInternal, 8: availability.ErrInternal, 9: availability.ErrInternal}

	_, err := f.useCase(3).Execute(context.Background(), &Request{ServiceID: 3, Date: tomorrow})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ProfessionalAdvanceWindow(t *testing.T) {
	f := newFixture()
	f.policies.byProfessional = map[int64]*domain.BookingPolicy{
		7: {SlotStepMinutes: 30, AdvanceBookingDays: 0},
		9: {SlotStepMinutes: 15, AdvanceBookingDays: 3},
	}

	resp, err := f.useCase(3).Execute(context.Background(), &Request{ServiceID: 3, Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	require.Len(t, resp.Professionals, 1)
	assert.Equal(t, int64(7), resp.Professionals[0].ProfessionalID)
	assert.Len(t, f.calculator.calls, 2, "professional with a shorter advance window is not calculated")
}

func TestExecute_NoProfessionals(t *testing.T) {
	f := newFixture()
	f.professionals.professionals = nil

	resp, err := f.useCase(3).Execute(context.Background(), &Request{ServiceID: 3, Date: tomorrow})

	require.NoError(t, err)
	assert.Empty(t, resp.Professionals)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		setup     func(f *fixture)
		expectErr error
	}{
		{name: "invalid service id", req: Request{ServiceID: 0, Date: tomorrow}, expectErr: ErrInvalidInput},
		{name: "missing date", req: Request{ServiceID: 3}, expectErr: ErrInvalidInput},
		{
			name:      "service not found",
			req:       Request{ServiceID: 3, Date: tomorrow},
			setup:     func(f *fixture) { f.services.err = serviceRepo.ErrServiceNotFound },
			expectErr: ErrServiceNotFound,
		},
		{
			name:      "inactive service",
			req:       Request{ServiceID: 3, Date: tomorrow},
			setup:     func(f *fixture) { f.services.service.IsActive = false },
			expectErr: ErrServiceNotFound,
		},
		{
			name:      "date in the past",
			req:       Request{ServiceID: 3, Date: time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)},
			expectErr: ErrInvalidDate,
		},
		{
			name:      "date beyond service advance window",
			req:       Request{ServiceID: 3, Date: time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC)},
			setup:     func(f *fixture) { f.policies.service = &domain.BookingPolicy{SlotStepMinutes: 30, AdvanceBookingDays: 30} },
			expectErr: ErrDateTooFarInFuture,
		},
		{
			name:      "policy lookup failure",
			req:       Request{ServiceID: 3, Date: tomorrow},
			setup:     func(f *fixture) { f.policies.err = errors.New("db down") },
			expectErr: ErrInternal,
		},
		{
			name:      "professional listing failure",
			req:       Request{ServiceID: 3, Date: tomorrow},
			setup:     func(f *fixture) { f.professionals.err = errors.New("db down") },
			expectErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			resp, err := f.useCase(3).Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, resp)
		})
	}
}
