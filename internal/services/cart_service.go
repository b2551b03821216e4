package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
)

const cartTTL = 24 * time.Hour

// CartService keeps one serialized list of product snapshots per session
// key. Every change is a read-modify-write of the whole blob. Snapshots
// are full copies, not references: adding the same product twice leaves
// two entries.
type CartService interface {
	GetCart(ctx context.Context, sessionKey string) ([]*models.Product, error)
	AddToCart(ctx context.Context, sessionKey string, product *models.Product) error
	RemoveFromCart(ctx context.Context, sessionKey string, productID uuid.UUID) error
	ClearCart(ctx context.Context, sessionKey string) error
}

type cartService struct {
	cache caching.CacheService
}

// NewCartService creates a new cart service instance
func NewCartService(cache caching.CacheService) CartService {
	return &cartService{cache: cache}
}

func (s *cartService) GetCart(ctx context.Context, sessionKey string) ([]*models.Product, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("%w: session key is required", common.ErrValidation)
	}

	items, err := s.cache.GetCart(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []*models.Product{}
	}
	return items, nil
}

func (s *cartService) AddToCart(ctx context.Context, sessionKey string, product *models.Product) error {
	if sessionKey == "" {
		return fmt.Errorf("%w: session key is required", common.ErrValidation)
	}
	if product == nil || product.ID == uuid.Nil {
		return fmt.Errorf("%w: product snapshot with id is required", common.ErrValidation)
	}

	items, err := s.cache.GetCart(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	items = append(items, product)

	if err := s.cache.SetCart(ctx, sessionKey, items, cartTTL); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

// RemoveFromCart drops every snapshot carrying the given product id.
func (s *cartService) RemoveFromCart(ctx context.Context, sessionKey string, productID uuid.UUID) error {
	if sessionKey == "" {
		return fmt.Errorf("%w: session key is required", common.ErrValidation)
	}

	items, err := s.cache.GetCart(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.cache.SetCart(ctx, sessionKey, kept, cartTTL); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return fmt.Errorf("%w: session key is required", common.ErrValidation)
	}
	if err := s.cache.DeleteCart(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
