package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shopmart/internal/caching"
	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"
)

const productCacheTTL = 5 * time.Minute

// CatalogService exposes the product catalog: paged listings by variant,
// single-product CRUD with an optimistic-concurrency token, and the
// category grouping used by the storefront landing page.
type CatalogService interface {
	ListByType(ctx context.Context, variant string, page, pageSize int) (*models.ProductListResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductCategories(ctx context.Context) ([]*models.ProductCategoryGroup, error)
	SetProductImage(ctx context.Context, id uuid.UUID, size, url string) error
}

type catalogService struct {
	productRepo repositories.ProductRepository
	cache       caching.CacheService
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(productRepo repositories.ProductRepository, cache caching.CacheService) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// ListByType pages the catalog rows of one variant. totalPages is
// total/pageSize with truncating division; see models.Paging. A page
// past the end returns an empty data list with the same totals.
func (s *catalogService) ListByType(ctx context.Context, variant string, page, pageSize int) (*models.ProductListResponse, error) {
	productType, ok := models.ParseProductType(variant)
	if !ok {
		return nil, fmt.Errorf("%w: invalid product type %q", common.ErrValidation, variant)
	}
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page and pageSize must be at least 1", common.ErrValidation)
	}

	total, err := s.productRepo.CountByType(ctx, productType)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	products, err := s.productRepo.ListByType(ctx, productType, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	return &models.ProductListResponse{
		Paging: models.Paging{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: total / pageSize,
			Total:      total,
		},
		Data: products,
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		log.Printf("WARN: failed to cache product %s: %v", id, err)
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Type == "" {
		product.Type = models.ProductTypeGeneric
	}
	if _, ok := models.ParseProductType(string(product.Type)); !ok {
		return fmt.Errorf("%w: invalid product type %q", common.ErrValidation, product.Type)
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.DateAdded == nil {
		now := time.Now()
		product.DateAdded = &now
	}
	product.Version = 1

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct is a full replace guarded by the version token. When the
// guarded update touches no rows the row is re-read to tell a stale
// write (row still there: conflict) from a deleted one (not found).
func (s *catalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	affected, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.productRepo.GetByID(ctx, product.ID); getErr != nil {
			if errors.Is(getErr, pgx.ErrNoRows) {
				return fmt.Errorf("%w: product %s", common.ErrNotFound, product.ID)
			}
			return fmt.Errorf("recheck product: %w", getErr)
		}
		return fmt.Errorf("%w: product %s was modified concurrently", common.ErrConflict, product.ID)
	}

	if err := s.cache.DeleteProduct(ctx, product.ID); err != nil {
		log.Printf("WARN: failed to invalidate product cache %s: %v", product.ID, err)
	}
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", common.ErrNotFound, id)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache %s: %v", id, err)
	}
	return nil
}

// GetProductCategories groups every product by its category. Rows with
// no category land in an empty-string bucket. Bucket order follows first
// appearance in the store's row order.
func (s *catalogService) GetProductCategories(ctx context.Context) ([]*models.ProductCategoryGroup, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	groups := []*models.ProductCategoryGroup{}
	byCategory := map[string]*models.ProductCategoryGroup{}
	for _, product := range products {
		category := common.SafeString(product.Category)
		group, ok := byCategory[category]
		if !ok {
			group = &models.ProductCategoryGroup{Category: category}
			byCategory[category] = group
			groups = append(groups, group)
		}
		group.Products = append(group.Products, product)
	}
	return groups, nil
}

// SetProductImage stores an uploaded object URL in one image slot.
func (s *catalogService) SetProductImage(ctx context.Context, id uuid.UUID, size, url string) error {
	var column string
	switch strings.ToLower(size) {
	case "small":
		column = "image_small"
	case "medium":
		column = "image_medium"
	case "large":
		column = "image_large"
	default:
		return fmt.Errorf("%w: image size must be small, medium or large", common.ErrValidation)
	}

	affected, err := s.productRepo.SetImageURL(ctx, id, column, url)
	if err != nil {
		return fmt.Errorf("set product image: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", common.ErrNotFound, id)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache %s: %v", id, err)
	}
	return nil
}
