package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий компании тенанта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория компании
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCompany получает компанию. В базе тенанта ровно одна строка companies.
func (r *Repository) GetCompany(ctx context.Context) (*domain.Company, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "timezone").
		From("companies").
		OrderBy("id").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - build select query: %v", ErrBuildQuery, err)
	}

	var company domain.Company
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&company.ID,
		&company.Name,
		&company.Timezone,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompany - scan company: %v", ErrScanRow, err)
	}

	return &company, nil
}
