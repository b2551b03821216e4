package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/repositories"
)

// OrderServiceInterface defines the interface for order operations
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderCreate) (*models.Order, error)
	GetOrderDetails(ctx context.Context, userID uuid.UUID) ([]*models.OrderGroup, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, orderItemRepo repositories.OrderItemRepository) OrderServiceInterface {
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// CreateOrder writes the order header, then one line item per requested
// product. The header is durably written before any line item; the two
// phases are not one transaction, so a failure between them leaves a
// header with no items. There is deliberately no product-existence or
// stock check here.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderCreate) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", common.ErrValidation)
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: item product id is required", common.ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", common.ErrValidation)
		}
	}

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		OrderDate: time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order header: %w", err)
	}

	for _, item := range items {
		orderItem := &models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if err := s.orderItemRepo.Create(ctx, orderItem); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
	}

	return order, nil
}

// GetOrderDetails returns the user's orders as ordered groups of
// flattened rows, newest order first. The repository sorts by order date
// descending; grouping preserves that row order within each group. A
// user with no orders gets an empty slice.
func (s *orderService) GetOrderDetails(ctx context.Context, userID uuid.UUID) ([]*models.OrderGroup, error) {
	details, err := s.orderRepo.GetDetailsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load order details: %w", err)
	}

	groups := []*models.OrderGroup{}
	byOrder := map[uuid.UUID]*models.OrderGroup{}
	for _, d := range details {
		group, ok := byOrder[d.OrderID]
		if !ok {
			group = &models.OrderGroup{OrderID: d.OrderID}
			byOrder[d.OrderID] = group
			groups = append(groups, group)
		}
		group.Items = append(group.Items, d)
	}
	return groups, nil
}
