package repositories

import (
	"context"

	"shopmart/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetDetailsByUser returns the flattened orders×order_items×products
	// join for one user, newest order first. Inner joins: an item whose
	// product no longer exists is excluded.
	GetDetailsByUser(ctx context.Context, userID uuid.UUID) ([]*models.OrderDetails, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, order_date)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.UserID, order.OrderDate)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, order_date
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.UserID, &order.OrderDate)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetDetailsByUser(ctx context.Context, userID uuid.UUID) ([]*models.OrderDetails, error) {
	query := `
		SELECT o.id, o.user_id, o.order_date, oi.product_id, oi.quantity,
			p.name, p.description, p.image_small, p.price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.OrderDetails
	for rows.Next() {
		d := &models.OrderDetails{}
		if err := rows.Scan(&d.OrderID, &d.UserID, &d.OrderDate, &d.ProductID, &d.Quantity,
			&d.ProductName, &d.ProductDescription, &d.ProductImageSmall, &d.ProductPrice); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
