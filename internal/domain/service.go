package domain

import "github.com/shopspring/decimal"

// Service represents a bookable service of the company
type Service struct {
	ID                 int64
	Name               string
	DurationMinutes    int
	PreparationMinutes int
	PostServiceMinutes int
	Price              decimal.Decimal
	IsActive           bool
}
