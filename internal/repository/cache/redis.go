package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streetkicks/storefront/internal/domain"
)

// ProductCache caches product catalog reads. Review collections and
// rating statistics are never cached: the review stats read path is
// always recomputed from the store. Catalog entries only go stale by
// TTL or by explicit invalidation when the stats worker refreshes a
// product's denormalized rating.
type ProductCache struct {
	client    *redis.Client
	listTTL   time.Duration
	detailTTL time.Duration
}

// NewProductCache creates a new Redis-backed product cache
func NewProductCache(client *redis.Client, listTTL, detailTTL time.Duration) *ProductCache {
	return &ProductCache{
		client:    client,
		listTTL:   listTTL,
		detailTTL: detailTTL,
	}
}

func (c *ProductCache) listKey(category string) string {
	if category == "" {
		return "products:all"
	}
	return fmt.Sprintf("products:category:%s", category)
}

func (c *ProductCache) detailKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}

// GetList retrieves a cached product listing; domain.ErrNotFound on miss
func (c *ProductCache) GetList(ctx context.Context, category string) ([]*domain.Product, error) {
	val, err := c.client.Get(ctx, c.listKey(category)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var products []*domain.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, err
	}

	return products, nil
}

// SetList stores a product listing
func (c *ProductCache) SetList(ctx context.Context, category string, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.listKey(category), data, c.listTTL).Err()
}

// GetDetail retrieves a cached product; domain.ErrNotFound on miss
func (c *ProductCache) GetDetail(ctx context.Context, slug string) (*domain.Product, error) {
	val, err := c.client.Get(ctx, c.detailKey(slug)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetDetail stores a product
func (c *ProductCache) SetDetail(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.detailKey(product.Slug), data, c.detailTTL).Err()
}

// InvalidateProduct removes the detail entry for a slug along with all
// listing entries, which may embed the stale rating.
func (c *ProductCache) InvalidateProduct(ctx context.Context, slug string) error {
	keys := []string{c.detailKey(slug), c.listKey("")}

	iter := c.client.Scan(ctx, 0, "products:category:*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	return c.client.Unlink(ctx, keys...).Err()
}
