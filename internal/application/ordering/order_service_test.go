package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/ordering"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/Mdev98/fast-food-api/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of the catalog
// ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSMSSender records sent messages.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, mobile, content string) error {
	args := m.Called(ctx, mobile, content)
	return args.Error(0)
}

func newCatalogProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", valueobject.NewMoneyFCFA(price), catalog.BrandPlaneteKebab, "kebab")
	require.NoError(t, err)
	return product
}

func TestOrderService_Place(t *testing.T) {
	t.Run("places order with server side totals and SMS", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		sender := new(MockSMSSender)
		notifier := NewNotifier(sender, "771112233", nil)
		service := NewOrderService(orderRepo, productRepo, notifier, nil, "ffapi:orders", nil)

		kebab := newCatalogProduct(t, "Kebab Poulet", 2500)
		coca := newCatalogProduct(t, "Coca", 1000)

		productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{kebab.ID, coca.ID}).
			Return([]catalog.Product{*kebab, *coca}, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)
		sender.On("Send", mock.Anything, "771112233", mock.AnythingOfType("string")).Return(nil)
		sender.On("Send", mock.Anything, "+221770001122", mock.AnythingOfType("string")).Return(nil)

		resp, err := service.Place(context.Background(), PlaceOrderRequest{
			CustomerName:   "Awa Diop",
			CustomerMobile: "770001122",
			Address:        "Ouakam, Dakar",
			Brand:          "planete_kebab",
			Items: []PlaceOrderItemRequest{
				{ProductID: kebab.ID, Quantity: 2},
				{ProductID: coca.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(6000), resp.Total)
		assert.Equal(t, "6 000 FCFA", resp.TotalFormatted)
		assert.Equal(t, "received", resp.Status)
		assert.Equal(t, "+221770001122", resp.CustomerMobile)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, int64(5000), resp.Items[0].Subtotal)

		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo, nil, nil, "ffapi:orders", nil)

		missing := uuid.New()
		productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).
			Return([]catalog.Product{}, nil)

		_, err := service.Place(context.Background(), PlaceOrderRequest{
			CustomerName:   "Awa Diop",
			CustomerMobile: "770001122",
			Address:        "Ouakam, Dakar",
			Brand:          "planete_kebab",
			Items:          []PlaceOrderItemRequest{{ProductID: missing, Quantity: 1}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("unavailable product is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo, nil, nil, "ffapi:orders", nil)

		kebab := newCatalogProduct(t, "Kebab Poulet", 2500)
		kebab.MarkUnavailable()

		productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{kebab.ID}).
			Return([]catalog.Product{*kebab}, nil)

		_, err := service.Place(context.Background(), PlaceOrderRequest{
			CustomerName:   "Awa Diop",
			CustomerMobile: "770001122",
			Address:        "Ouakam, Dakar",
			Brand:          "planete_kebab",
			Items:          []PlaceOrderItemRequest{{ProductID: kebab.ID, Quantity: 1}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})

	t.Run("SMS failure never rolls back the order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		sender := new(MockSMSSender)
		notifier := NewNotifier(sender, "771112233", nil)
		service := NewOrderService(orderRepo, productRepo, notifier, nil, "ffapi:orders", nil)

		kebab := newCatalogProduct(t, "Kebab Poulet", 2500)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).
			Return([]catalog.Product{*kebab}, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		resp, err := service.Place(context.Background(), PlaceOrderRequest{
			CustomerName:   "Awa Diop",
			CustomerMobile: "770001122",
			Address:        "Ouakam, Dakar",
			Brand:          "planete_kebab",
			Items:          []PlaceOrderItemRequest{{ProductID: kebab.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("invalid mobile is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo, nil, nil, "ffapi:orders", nil)

		kebab := newCatalogProduct(t, "Kebab Poulet", 2500)
		productRepo.On("FindByIDs", mock.Anything, mock.Anything).
			Return([]catalog.Product{*kebab}, nil)

		_, err := service.Place(context.Background(), PlaceOrderRequest{
			CustomerName:   "Awa Diop",
			CustomerMobile: "12",
			Address:        "Ouakam, Dakar",
			Brand:          "planete_kebab",
			Items:          []PlaceOrderItemRequest{{ProductID: kebab.ID, Quantity: 1}},
		})
		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "Save")
	})
}

func placeTestOrder(t *testing.T) *ordering.Order {
	t.Helper()
	kebab := newCatalogProduct(t, "Kebab Poulet", 2500)
	item, err := ordering.NewOrderItem(kebab, 2)
	require.NoError(t, err)

	order, err := ordering.NewOrder(
		"Awa Diop", "770001122", "Ouakam, Dakar",
		catalog.BrandPlaneteKebab, "Sans oignons", ordering.OrderItems{item},
	)
	require.NoError(t, err)
	return order
}

func TestOrderService_GetByID(t *testing.T) {
	t.Run("not found is passed through", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)
		id := uuid.New()

		orderRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_List(t *testing.T) {
	t.Run("builds domain filter", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)
		order := placeTestOrder(t)

		matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Filters["brand"] == "planete_kebab" &&
				f.Filters["status"] == "received" &&
				f.Filters["mobile"] == "+221770001122"
		})
		orderRepo.On("FindAll", mock.Anything, matchFilter).Return([]ordering.Order{*order}, nil)
		orderRepo.On("Count", mock.Anything, matchFilter).Return(int64(1), nil)

		items, total, err := service.List(context.Background(), OrderListFilter{
			Brand:  "planete_kebab",
			Status: "received",
			Mobile: "770001122",
		})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int64(1), total)
	})

	t.Run("invalid status filter is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)

		_, _, err := service.List(context.Background(), OrderListFilter{Status: "cooked"})
		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "FindAll")
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("advances to next status and invalidates cache", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		invalidator := new(MockCacheInvalidator)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, invalidator, "ffapi:orders", nil)
		order := placeTestOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)
		invalidator.On("DeletePrefix", mock.Anything, "ffapi:orders").Return(int64(1), nil)

		resp, err := service.UpdateStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "prepared"})
		require.NoError(t, err)
		assert.Equal(t, "prepared", resp.Status)

		invalidator.AssertExpectations(t)
	})

	t.Run("setting the current status again succeeds", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)
		order := placeTestOrder(t)
		version := order.Version

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		resp, err := service.UpdateStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "received"})
		require.NoError(t, err)
		assert.Equal(t, "received", resp.Status)
		assert.Equal(t, version, resp.Version)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)
		order := placeTestOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := service.UpdateStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "delivered"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), nil, nil, "ffapi:orders", nil)
		order := placeTestOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := service.UpdateStatus(context.Background(), order.ID, UpdateOrderStatusRequest{Status: "cooked"})
		require.Error(t, err)
	})
}

// MockCacheInvalidator records prefix invalidations.
type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}
