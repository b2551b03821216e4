package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopmart/internal/common"
	"shopmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	service       OrderServiceInterface
	userID        uuid.UUID
	ctx           context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.orderItemRepo = new(MockOrderItemRepository)
	suite.service = NewOrderService(suite.orderRepo, suite.orderItemRepo)
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreateOrder_HeaderThenItems() {
	items := []models.OrderCreate{
		{ProductID: uuid.New(), Quantity: 1},
		{ProductID: uuid.New(), Quantity: 3},
	}

	suite.orderRepo.On("Create", suite.ctx, mock.MatchedBy(func(o *models.Order) bool {
		return o.UserID == suite.userID && o.ID != uuid.Nil
	})).Return(nil)
	suite.orderItemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).Return(nil)

	order, err := suite.service.CreateOrder(suite.ctx, suite.userID, items)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, order.UserID)
	suite.orderRepo.AssertNumberOfCalls(suite.T(), "Create", 1)
	suite.orderItemRepo.AssertNumberOfCalls(suite.T(), "Create", 2)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ItemsCarryHeaderID() {
	productID := uuid.New()
	var createdOrderID uuid.UUID

	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			createdOrderID = args.Get(1).(*models.Order).ID
		}).Return(nil)
	suite.orderItemRepo.On("Create", suite.ctx, mock.MatchedBy(func(item *models.OrderItem) bool {
		return item.ProductID == productID && item.Quantity == 2
	})).Return(nil)

	order, err := suite.service.CreateOrder(suite.ctx, suite.userID,
		[]models.OrderCreate{{ProductID: productID, Quantity: 2}})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), createdOrderID, order.ID)

	itemArg := suite.orderItemRepo.Calls[0].Arguments.Get(1).(*models.OrderItem)
	assert.Equal(suite.T(), order.ID, itemArg.OrderID)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_EmptyItems() {
	_, err := suite.service.CreateOrder(suite.ctx, suite.userID, nil)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.orderRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositiveQuantity() {
	items := []models.OrderCreate{{ProductID: uuid.New(), Quantity: 0}}

	_, err := suite.service.CreateOrder(suite.ctx, suite.userID, items)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.orderRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_MissingUser() {
	items := []models.OrderCreate{{ProductID: uuid.New(), Quantity: 1}}

	_, err := suite.service.CreateOrder(suite.ctx, uuid.Nil, items)

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ItemWriteFailureSurfaces() {
	// The header is already durable when an item write fails; the error
	// still reaches the caller.
	suite.orderRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Order")).Return(nil)
	suite.orderItemRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrderItem")).
		Return(errors.New("connection reset"))

	_, err := suite.service.CreateOrder(suite.ctx, suite.userID,
		[]models.OrderCreate{{ProductID: uuid.New(), Quantity: 1}})

	assert.Error(suite.T(), err)
	suite.orderRepo.AssertNumberOfCalls(suite.T(), "Create", 1)
}

func (suite *OrderServiceTestSuite) TestGetOrderDetails_GroupsRowsInOrder() {
	newerOrder := uuid.New()
	olderOrder := uuid.New()
	now := time.Now()

	// Rows arrive flattened, newest order first.
	rows := []*models.OrderDetails{
		{OrderID: newerOrder, UserID: suite.userID, OrderDate: now, ProductID: uuid.New(), Quantity: 1},
		{OrderID: newerOrder, UserID: suite.userID, OrderDate: now, ProductID: uuid.New(), Quantity: 2},
		{OrderID: olderOrder, UserID: suite.userID, OrderDate: now.Add(-time.Hour), ProductID: uuid.New(), Quantity: 5},
	}
	suite.orderRepo.On("GetDetailsByUser", suite.ctx, suite.userID).Return(rows, nil)

	groups, err := suite.service.GetOrderDetails(suite.ctx, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), groups, 2)
	assert.Equal(suite.T(), newerOrder, groups[0].OrderID)
	assert.Len(suite.T(), groups[0].Items, 2)
	assert.Equal(suite.T(), olderOrder, groups[1].OrderID)
	assert.Equal(suite.T(), 5, groups[1].Items[0].Quantity)
}

func (suite *OrderServiceTestSuite) TestGetOrderDetails_NoOrdersIsEmptySlice() {
	suite.orderRepo.On("GetDetailsByUser", suite.ctx, suite.userID).
		Return([]*models.OrderDetails(nil), nil)

	groups, err := suite.service.GetOrderDetails(suite.ctx, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), groups)
	assert.Empty(suite.T(), groups)
}
