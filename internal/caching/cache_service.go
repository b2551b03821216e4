package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shopmart/internal/models"
)

type CacheService interface {
	// Cart session blobs. The whole product list is stored as one JSON
	// value per session key and rewritten on every change.
	GetCart(ctx context.Context, sessionKey string) ([]*models.Product, error)
	SetCart(ctx context.Context, sessionKey string, items []*models.Product, ttl time.Duration) error
	DeleteCart(ctx context.Context, sessionKey string) error

	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisClient builds the shared redis client. Accepts redis://host:port
// and plain host:port address forms.
func NewRedisClient(addr, password string, db int) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return client
}

func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetCart(ctx context.Context, sessionKey string) ([]*models.Product, error) {
	key := fmt.Sprintf("shopmart:cart:%s", sessionKey)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // no cart yet
		}
		return nil, err
	}

	var items []*models.Product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *redisCacheService) SetCart(ctx context.Context, sessionKey string, items []*models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("shopmart:cart:%s", sessionKey)
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCart(ctx context.Context, sessionKey string) error {
	key := fmt.Sprintf("shopmart:cart:%s", sessionKey)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("shopmart:product:%s", productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("shopmart:product:%s", product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("shopmart:product:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}
