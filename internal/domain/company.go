package domain

import (
	"fmt"
	"time"
)

// Company is the tenant. Each tenant database holds exactly one company row.
type Company struct {
	ID       int64
	Name     string
	Timezone string // IANA, e.g. "Europe/Moscow"
}

// Location loads the company timezone
func (c *Company) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid company timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
