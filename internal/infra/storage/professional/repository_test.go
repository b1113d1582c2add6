package professional

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM professionals WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_company_schedule", "is_active"}).
			AddRow(7, "Анна", false, true))
	mock.ExpectQuery(`FROM professional_service WHERE professional_id = \$1 ORDER BY service_id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"service_id", "duration_minutes", "price"}).
			AddRow(3, nil, nil).
			AddRow(4, 90, "2500.00"))

	p, err := NewRepository(db).GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Анна", p.Name)
	require.Len(t, p.Services, 2)
	assert.Nil(t, p.Services[0].DurationMinutes)
	assert.False(t, p.Services[0].Price.Valid)
	require.NotNil(t, p.Services[1].DurationMinutes)
	assert.Equal(t, 90, *p.Services[1].DurationMinutes)
	assert.True(t, p.Services[1].Price.Decimal.Equal(decimal.NewFromInt(2500)))
	assert.True(t, p.Offers(4))
	assert.False(t, p.Offers(5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM professionals").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_company_schedule", "is_active"}))

	_, err = NewRepository(db).GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "name", "is_company_schedule", "is_active", "service_id", "duration_minutes", "price"}
	mock.ExpectQuery(`FROM professionals p JOIN professional_service ps ON ps.professional_id = p.id WHERE p.is_active = \$1 AND ps.service_id = \$2 ORDER BY p.id`).
		WithArgs(true, int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(7, "Анна", false, true, 3, nil, nil).
			AddRow(8, "Борис", true, true, 3, 45, "1200.50"))

	professionals, err := NewRepository(db).ListByService(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, professionals, 2)
	assert.True(t, professionals[1].IsCompanySchedule)
	assert.Equal(t, 45, *professionals[1].Offering(3).DurationMinutes)
	assert.Equal(t, "1200.5", professionals[1].Offering(3).Price.Decimal.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByService_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM professionals").WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).ListByService(context.Background(), 3)

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}
