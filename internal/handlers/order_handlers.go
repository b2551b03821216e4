package handlers

import (
	"net/http"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

type createOrderRequest struct {
	ProductIDs []string `json:"product_ids"`
	Items      []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

// CreateOrder handles POST /orders. The body carries either a flat
// product_ids list (each line gets quantity 1) or explicit items pairs.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	var items []models.OrderCreate
	switch {
	case len(req.Items) > 0:
		for _, item := range req.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return common.SendValidationError(c, "items", "Invalid product id: "+item.ProductID)
			}
			items = append(items, models.OrderCreate{ProductID: productID, Quantity: item.Quantity})
		}
	case len(req.ProductIDs) > 0:
		for _, raw := range req.ProductIDs {
			productID, err := uuid.Parse(raw)
			if err != nil {
				return common.SendValidationError(c, "product_ids", "Invalid product id: "+raw)
			}
			items = append(items, models.OrderCreate{ProductID: productID, Quantity: 1})
		}
	default:
		return common.SendValidationError(c, "items", "Order must contain at least one product")
	}

	order, err := h.orderService.CreateOrder(ctx, userID, items)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrderDetails handles GET /orders: the caller's order history with
// product lines, newest order first.
func (h *OrderHandlers) GetOrderDetails(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	groups, err := h.orderService.GetOrderDetails(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, groups)
}
