// Package ordering contains the application service for placing and
// tracking customer orders.
package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/ordering"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
)

// CacheInvalidator drops cached responses for a key prefix. Satisfied
// by cache.Store.
type CacheInvalidator interface {
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// OrderService handles order placement and lifecycle.
type OrderService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	notifier    *Notifier
	cache       CacheInvalidator
	cachePrefix string
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService. cache and notifier may be
// nil when the respective feature is disabled.
func NewOrderService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	notifier *Notifier,
	cache CacheInvalidator,
	cachePrefix string,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		cache:       cache,
		cachePrefix: cachePrefix,
		logger:      logger,
	}
}

// Place creates an order. Line items are snapshotted from the catalog
// and the total is computed server side. The SMS notifications fire
// after the order is persisted and never roll it back.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	brand, err := catalog.ParseBrand(req.Brand)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make(ordering.OrderItems, 0, len(req.Items))
	for _, reqItem := range req.Items {
		product, ok := byID[reqItem.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				"Unknown product: "+reqItem.ProductID.String())
		}
		if !product.Available {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"Product is not available: "+product.Name)
		}

		item, err := ordering.NewOrderItem(product, reqItem.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := ordering.NewOrder(
		req.CustomerName,
		req.CustomerMobile,
		req.Address,
		brand,
		req.Details,
		items,
	)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.notifier != nil {
		s.notifier.NotifyOrderPlaced(ctx, order)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID.
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.Limit > 0 {
		domainFilter.PageSize = filter.Limit
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.Brand != "" {
		brand, err := catalog.ParseBrand(filter.Brand)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["brand"] = string(brand)
	}
	if filter.Status != "" {
		status := ordering.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+filter.Status)
		}
		domainFilter.Filters["status"] = string(status)
	}
	if filter.Mobile != "" {
		normalized, err := ordering.NormalizeMobile(filter.Mobile)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["mobile"] = normalized
	}
	if filter.CreatedAfter != nil {
		domainFilter.Filters["created_after"] = *filter.CreatedAfter
	}
	if filter.CreatedBefore != nil {
		domainFilter.Filters["created_before"] = *filter.CreatedBefore
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// UpdateStatus advances an order to the requested status. Only the
// next forward step is allowed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	response := ToOrderResponse(order)
	return &response, nil
}

// invalidateCache drops cached order responses. A cache failure never
// fails the mutation.
func (s *OrderService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.DeletePrefix(ctx, s.cachePrefix); err != nil {
		s.logger.Warn("Failed to invalidate order cache",
			zap.String("prefix", s.cachePrefix),
			zap.Error(err),
		)
	}
}
