package handlers

import (
	"context"
	"net/http"
	"time"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookieName = "session_id"

// ProductSource resolves a product id to its current snapshot. Satisfied
// by the local catalog service and by the remote catalog client.
type ProductSource interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CartHandlers handles HTTP requests for the session cart
type CartHandlers struct {
	cartService services.CartService
	products    ProductSource
}

// NewCartHandlers creates a new cart handlers instance
func NewCartHandlers(cartService services.CartService, products ProductSource) *CartHandlers {
	return &CartHandlers{
		cartService: cartService,
		products:    products,
	}
}

// sessionKey returns the caller's cart session id, minting a cookie when
// none is present yet.
func (h *CartHandlers) sessionKey(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}

// GetCart handles GET /cart
func (h *CartHandlers) GetCart(c echo.Context) error {
	items, err := h.cartService.GetCart(c.Request().Context(), h.sessionKey(c))
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart handles POST /cart. The body names a product id; the current
// catalog row is snapshotted into the cart.
func (h *CartHandlers) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.products.GetProduct(ctx, productID)
	if err != nil {
		return common.SendError(c, err)
	}

	sessionKey := h.sessionKey(c)
	if err := h.cartService.AddToCart(ctx, sessionKey, product); err != nil {
		return common.SendError(c, err)
	}

	items, err := h.cartService.GetCart(ctx, sessionKey)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// RemoveFromCart handles DELETE /cart/:productId
func (h *CartHandlers) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("productId"), "productId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sessionKey := h.sessionKey(c)
	if err := h.cartService.RemoveFromCart(ctx, sessionKey, productID); err != nil {
		return common.SendError(c, err)
	}

	items, err := h.cartService.GetCart(ctx, sessionKey)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ClearCart handles DELETE /cart
func (h *CartHandlers) ClearCart(c echo.Context) error {
	if err := h.cartService.ClearCart(c.Request().Context(), h.sessionKey(c)); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
