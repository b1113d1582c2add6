package company

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, timezone FROM companies ORDER BY id LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "timezone"}).AddRow(1, "Barber Club", "Europe/Moscow"))

	company, err := NewRepository(db).GetCompany(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", company.Timezone)

	loc, err := company.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCompany_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM companies").WillReturnRows(sqlmock.NewRows([]string{"id", "name", "timezone"}))

	_, err = NewRepository(db).GetCompany(context.Background())

	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
