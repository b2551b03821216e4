package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"shopmart/internal/common"
	"shopmart/internal/models"
)

// CatalogClient talks to a remote catalog service exposing the same
// product surface this service does. It lets a storefront deployment run
// against a separate catalog instance instead of its own database.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a catalog API client for the given base URL
func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CatalogClient) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: catalog request failed: %v", common.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: catalog resource %s", common.ErrNotFound, endpoint)
	case resp.StatusCode == http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: catalog rejected request: %s", common.ErrValidation, string(body))
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: catalog returned status %d", common.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("catalog returned unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read catalog response: %v", common.ErrUpstreamUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode catalog response: %v", common.ErrUpstreamUnavailable, err)
	}
	return nil
}

// GetProduct fetches a single product by id
func (c *CatalogClient) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "/products/"+id.String(), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByType fetches one page of the given product variant
func (c *CatalogClient) ListByType(ctx context.Context, variant string, page, pageSize int) (*models.ProductListResponse, error) {
	endpoint := fmt.Sprintf("/products/%s?page=%s&pageSize=%s",
		url.PathEscape(variant),
		strconv.Itoa(page),
		strconv.Itoa(pageSize),
	)

	var listing models.ProductListResponse
	if err := c.get(ctx, endpoint, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetProductCategories fetches the category groupings
func (c *CatalogClient) GetProductCategories(ctx context.Context) ([]*models.ProductCategoryGroup, error) {
	var groups []*models.ProductCategoryGroup
	if err := c.get(ctx, "/products/categories", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
