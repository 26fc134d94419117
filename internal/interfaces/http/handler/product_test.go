package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/Mdev98/fast-food-api/internal/application/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
	"github.com/Mdev98/fast-food-api/internal/domain/shared/valueobject"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/dto"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockProductRepository implements catalog.ProductRepository for testing
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func newHandlerTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		"Kebab Poulet",
		"Sandwich kebab au poulet",
		valueobject.NewMoneyFCFA(2500),
		catalog.BrandPlaneteKebab,
		"sandwichs",
	)
	require.NoError(t, err)
	return product
}

func setupProductTestRouter() (*gin.Engine, *MockProductRepository, *ProductHandler) {
	mockRepo := new(MockProductRepository)
	service := catalogapp.NewProductService(mockRepo, nil, "", zap.NewNop())
	handler := NewProductHandler(service, nil)

	router := gin.New()
	return router, mockRepo, handler
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.POST("/products", handler.Create)

		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"name":     "Kebab Poulet",
			"price":    2500,
			"brand":    "planete_kebab",
			"category": "sandwichs",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "Kebab Poulet", data["name"])
		assert.Equal(t, "2 500 FCFA", data["price_formatted"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing fields return validation details", func(t *testing.T) {
		router, _, handler := setupProductTestRouter()
		router.POST("/products", handler.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte(`{"name":"x"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
		assert.Contains(t, w.Body.String(), "price")
	})

	t.Run("whitespace-only name returns 400", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.POST("/products", handler.Create)

		body, _ := json.Marshal(map[string]any{
			"name":     " ",
			"price":    2500,
			"brand":    "planete_kebab",
			"category": "sandwichs",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
		mockRepo.AssertNotCalled(t, "Save")
	})

	t.Run("unknown brand returns 400", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.POST("/products", handler.Create)

		body, _ := json.Marshal(map[string]any{
			"name":     "Kebab Poulet",
			"price":    2500,
			"brand":    "burger_king",
			"category": "sandwichs",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Save")
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("returns a product", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.GET("/products/:id", handler.Get)

		product := newHandlerTestProduct(t)
		mockRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, product.ID.String(), data["id"])
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.GET("/products/:id", handler.Get)

		id := uuid.New()
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		router, _, handler := setupProductTestRouter()
		router.GET("/products/:id", handler.Get)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	t.Run("returns pagination meta", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.GET("/products", handler.List)

		product := newHandlerTestProduct(t)
		mockRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(27), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products?page=2&limit=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(27), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 3, resp.Meta.Pages)
	})

	t.Run("oversized limit is capped, not rejected", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.GET("/products", handler.List)

		mockRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.PageSize == 100
		})).Return([]catalog.Product{}, nil)
		mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products?limit=5000", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 100, resp.Meta.Limit)
	})

	t.Run("missing pagination falls back to defaults", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.GET("/products", handler.List)

		mockRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 10
		})).Return([]catalog.Product{}, nil)
		mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 10, resp.Meta.Limit)
	})
}

func TestProductHandler_Update(t *testing.T) {
	t.Run("updates price", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.PUT("/products/:id", handler.Update)

		product := newHandlerTestProduct(t)
		mockRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		mockRepo.On("Save", mock.Anything, product).Return(nil)

		body := []byte(`{"price": 3000}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(3000), data["price"])
	})
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("deletes and returns 204", func(t *testing.T) {
		router, mockRepo, handler := setupProductTestRouter()
		router.DELETE("/products/:id", handler.Delete)

		id := uuid.New()
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockRepo.AssertExpectations(t)
	})
}
