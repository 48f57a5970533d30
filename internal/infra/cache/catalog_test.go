package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
)

func newTestCatalog(t *testing.T) (*Catalog, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewCatalog(rdb, time.Minute), mr
}

func TestCatalog_SetGetEntity(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	entity := &catalogservice.Entity{
		Type:          domain.EntityTypeCombo,
		ID:            5,
		Name:          "Парк целиком",
		Capacity:      30,
		BasePrice:     1200.50,
		AttractionIDs: []int64{1, 2, 3},
	}

	require.NoError(t, c.SetEntity(ctx, entity))

	got, err := c.GetEntity(ctx, domain.EntityTypeCombo, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity, got)
}

func TestCatalog_GetEntity_Miss(t *testing.T) {
	c, _ := newTestCatalog(t)

	got, err := c.GetEntity(context.Background(), domain.EntityTypeAttraction, 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalog_GetEntity_Expired(t *testing.T) {
	c, mr := newTestCatalog(t)
	ctx := context.Background()

	entity := &catalogservice.Entity{
		Type:      domain.EntityTypeAttraction,
		ID:        7,
		Name:      "Колесо обозрения",
		Capacity:  12,
		BasePrice: 350,
	}
	require.NoError(t, c.SetEntity(ctx, entity))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetEntity(ctx, domain.EntityTypeAttraction, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalog_KeysAreTypeScoped(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.SetEntity(ctx, &catalogservice.Entity{
		Type: domain.EntityTypeAttraction, ID: 1, Name: "Горка",
	}))

	got, err := c.GetEntity(ctx, domain.EntityTypeCombo, 1)
	require.NoError(t, err)
	assert.Nil(t, got, "combo key must not collide with attraction key")
}
