// Кеш мастер-данных каталога в Redis.
// Хранит только сущности каталога; правила ценообразования не кешируются
// никогда — они читаются из хранилища на каждый запрос.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
)

// Catalog кеш сущностей каталога поверх Redis
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalog создает кеш каталога с указанным TTL
func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{rdb: rdb, ttl: ttl}
}

func entityKey(entityType domain.EntityType, entityID int64) string {
	return fmt.Sprintf("catalog:%s:%d", entityType, entityID)
}

// GetEntity возвращает сущность из кеша; промах — (nil, nil)
func (c *Catalog) GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*catalogservice.Entity, error) {
	payload, err := c.rdb.Get(ctx, entityKey(entityType, entityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache: get entity: %w", err)
	}

	var entity catalogservice.Entity
	if err := json.Unmarshal(payload, &entity); err != nil {
		return nil, fmt.Errorf("cache: unmarshal entity: %w", err)
	}

	return &entity, nil
}

// SetEntity сохраняет сущность в кеш с TTL
func (c *Catalog) SetEntity(ctx context.Context, entity *catalogservice.Entity) error {
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("cache: marshal entity: %w", err)
	}

	if err := c.rdb.Set(ctx, entityKey(entity.Type, entity.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set entity: %w", err)
	}
	return nil
}
