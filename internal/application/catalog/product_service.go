// Package catalog contains the application services for the product
// catalog, including image hosting.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/Mdev98/fast-food-api/internal/domain/shared/valueobject"
)

// CacheInvalidator drops cached responses for a key prefix. Satisfied
// by cache.Store.
type CacheInvalidator interface {
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// ProductService handles product catalog operations.
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       CacheInvalidator
	cachePrefix string
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. cache may be nil when
// response caching is disabled.
func NewProductService(
	productRepo catalog.ProductRepository,
	cache CacheInvalidator,
	cachePrefix string,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		cachePrefix: cachePrefix,
		logger:      logger,
	}
}

// Create creates a new product.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	brand, err := catalog.ParseBrand(req.Brand)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Name,
		req.Description,
		valueobject.NewMoneyFCFA(req.Price),
		brand,
		req.Category,
	)
	if err != nil {
		return nil, err
	}

	if req.Available != nil && !*req.Available {
		product.MarkUnavailable()
	}

	if len(req.AvailableInCountries) > 0 {
		if err := product.SetCountries(catalog.CountryList(req.AvailableInCountries)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID.
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
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
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Available != nil {
		domainFilter.Filters["available"] = *filter.Available
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update applies a partial update to a product.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	price := product.PriceMoney()
	if req.Price != nil {
		price = valueobject.NewMoneyFCFA(*req.Price)
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}

	if err := product.Update(name, description, price, category); err != nil {
		return nil, err
	}

	if req.Available != nil {
		if *req.Available {
			product.MarkAvailable()
		} else {
			product.MarkUnavailable()
		}
	}

	if len(req.AvailableInCountries) > 0 {
		if err := product.SetCountries(catalog.CountryList(req.AvailableInCountries)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// invalidateCache drops cached product list and detail responses. A
// cache failure never fails the mutation.
func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.DeletePrefix(ctx, s.cachePrefix); err != nil {
		s.logger.Warn("Failed to invalidate product cache",
			zap.String("prefix", s.cachePrefix),
			zap.Error(err),
		)
	}
}
