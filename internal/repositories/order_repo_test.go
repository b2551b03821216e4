package repositories

import (
	"context"
	"testing"
	"time"

	"shopmart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	items   OrderItemRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.items = NewOrderItemRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) TestCreate_Success() {
	order := &models.Order{
		ID:        uuid.New(),
		UserID:    suite.userID,
		OrderDate: time.Now(),
	}

	suite.mock.ExpectExec(`INSERT INTO orders \(id, user_id, order_date\)\s+VALUES \(\$1, \$2, \$3\)`).
		WithArgs(order.ID, order.UserID, order.OrderDate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, order)
	assert.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestCreateItem_Success() {
	item := &models.OrderItem{
		ID:        uuid.New(),
		OrderID:   uuid.New(),
		ProductID: uuid.New(),
		Quantity:  2,
	}

	suite.mock.ExpectExec(`INSERT INTO order_items \(id, order_id, product_id, quantity\)\s+VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(item.ID, item.OrderID, item.ProductID, item.Quantity).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.items.Create(suite.context, item)
	assert.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestGetDetailsByUser_FlattenedRows() {
	orderID := uuid.New()
	productID := uuid.New()
	orderDate := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "order_date", "product_id", "quantity",
		"name", "description", "image_small", "price",
	}).
		AddRow(orderID, suite.userID, orderDate, productID, 2,
			stringPtr("Widget"), stringPtr("A widget"), nil, floatPtr(4.99)).
		AddRow(orderID, suite.userID, orderDate, uuid.New(), 1,
			stringPtr("Gadget"), nil, nil, floatPtr(12.00))

	suite.mock.ExpectQuery(`SELECT o\.id, o\.user_id, o\.order_date, oi\.product_id, oi\.quantity,(.+)FROM orders o\s+JOIN order_items oi ON oi\.order_id = o\.id\s+JOIN products p ON p\.id = oi\.product_id\s+WHERE o\.user_id = \$1\s+ORDER BY o\.order_date DESC`).
		WithArgs(suite.userID).
		WillReturnRows(rows)

	details, err := suite.repo.GetDetailsByUser(suite.context, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), details, 2)
	assert.Equal(suite.T(), orderID, details[0].OrderID)
	assert.Equal(suite.T(), productID, details[0].ProductID)
	assert.Equal(suite.T(), "Widget", *details[0].ProductName)
	assert.Equal(suite.T(), 2, details[0].Quantity)
}

func (suite *OrderRepoTestSuite) TestGetDetailsByUser_NoOrders() {
	suite.mock.ExpectQuery(`SELECT o\.id, o\.user_id, o\.order_date,(.+)WHERE o\.user_id = \$1`).
		WithArgs(suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "order_date", "product_id", "quantity",
			"name", "description", "image_small", "price",
		}))

	details, err := suite.repo.GetDetailsByUser(suite.context, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), details)
}
