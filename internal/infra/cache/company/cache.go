package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Cache read-through кэш компании тенанта в Redis.
// Недоступность Redis не ломает запрос: данные берутся из базы.
type Cache struct {
	repo   Repository
	redis  *redis.Client
	key    string
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш. keyPrefix отделяет тенантов, если Redis общий.
func NewCache(repo Repository, client *redis.Client, keyPrefix string, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		repo:   repo,
		redis:  client,
		key:    fmt.Sprintf("%s:company", keyPrefix),
		ttl:    ttl,
		logger: logger,
	}
}

type cachedCompany struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// GetCompany возвращает компанию из кэша или из базы, сохраняя результат в кэш
func (c *Cache) GetCompany(ctx context.Context) (*domain.Company, error) {
	data, err := c.redis.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var cached cachedCompany
		if err := json.Unmarshal(data, &cached); err == nil {
			return &domain.Company{ID: cached.ID, Name: cached.Name, Timezone: cached.Timezone}, nil
		}
		c.logger.Warn("company cache: broken entry %s, reloading", c.key)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("company cache: get %s: %v", c.key, err)
	}

	company, err := c.repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, company)
	return company, nil
}

// Invalidate удаляет закэшированную компанию (например, после смены часового пояса)
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("company cache: invalidate: %w", err)
	}
	return nil
}

func (c *Cache) store(ctx context.Context, company *domain.Company) {
	data, err := json.Marshal(cachedCompany{ID: company.ID, Name: company.Name, Timezone: company.Timezone})
	if err != nil {
		c.logger.Warn("company cache: marshal: %v", err)
		return
	}
	if err := c.redis.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("company cache: set %s: %v", c.key, err)
	}
}
