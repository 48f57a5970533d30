package catalogservice

import (
	"context"

	"github.com/funpark/TicketingService/internal/domain"
)

// EntityCache интерфейс кеша мастер-данных.
// Промах кеша возвращается как (nil, nil), а не ошибкой.
type EntityCache interface {
	GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*Entity, error)
	SetEntity(ctx context.Context, entity *Entity) error
}

// CatalogAPI интерфейс исходного клиента каталога
type CatalogAPI interface {
	GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*Entity, error)
}

// CachedClient декоратор над клиентом каталога с кешированием сущностей.
// Мастер-данные меняются редко, поэтому короткий TTL безопасен.
// Ошибки кеша не фатальны: запрос уходит в CatalogService напрямую.
type CachedClient struct {
	client CatalogAPI
	cache  EntityCache
	log    Logger
}

// NewCachedClient создает кеширующий декоратор над клиентом каталога
func NewCachedClient(client CatalogAPI, cache EntityCache, log Logger) *CachedClient {
	return &CachedClient{
		client: client,
		cache:  cache,
		log:    log,
	}
}

// GetEntity получает сущность из кеша либо из CatalogService
func (c *CachedClient) GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*Entity, error) {
	cached, err := c.cache.GetEntity(ctx, entityType, entityID)
	if err != nil {
		c.log.Warn("CatalogCache: get failed for %s id=%d: %v", entityType, entityID, err)
	} else if cached != nil {
		return cached, nil
	}

	entity, err := c.client.GetEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetEntity(ctx, entity); err != nil {
		c.log.Warn("CatalogCache: set failed for %s id=%d: %v", entityType, entityID, err)
	}

	return entity, nil
}
