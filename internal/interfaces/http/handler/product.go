package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Mdev98/fast-food-api/internal/application/catalog"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/dto"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/middleware"
)

// ProductHandler handles product and product image HTTP requests.
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	images   *catalogapp.ImageService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *catalogapp.ProductService, images *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{products: products, images: images}
}

// List returns a paginated product list with optional filters.
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter.Page, filter.Limit = dto.ClampPagination(filter.Page, filter.Limit)

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.Limit)
}

// Get returns a single product by ID.
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create creates a new product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update applies a partial update to a product.
func (h *ProductHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), idReq.UUID(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.Delete(c.Request.Context(), req.UUID()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateWithImage creates a product from an external image URL. The
// image is downloaded, re-hosted and linked to the new product.
func (h *ProductHandler) CreateWithImage(c *gin.Context) {
	if h.images == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Image hosting is not configured")
		return
	}

	var req catalogapp.CreateProductWithImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.images.CreateWithImage(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// UploadImage hosts a standalone image. The optional product_name form
// field names the stored object; nothing is attached to a product.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Image hosting is not configured")
		return
	}

	fileName, data, ok := h.readImageFile(c)
	if !ok {
		return
	}

	hosted, err := h.images.HostImage(c.Request.Context(), c.PostForm("product_name"), fileName, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hosted)
}

// AttachImage attaches an uploaded image file to an existing product.
func (h *ProductHandler) AttachImage(c *gin.Context) {
	if h.images == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Image hosting is not configured")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	fileName, data, ok := h.readImageFile(c)
	if !ok {
		return
	}

	product, err := h.images.AttachImage(c.Request.Context(), idReq.UUID(), fileName, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// readImageFile pulls the image form file into memory, writing the
// error response itself when the upload is missing or too large.
func (h *ProductHandler) readImageFile(c *gin.Context) (string, []byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return "", nil, false
	}
	if fileHeader.Size > catalogapp.MaxImageSize {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Image exceeds the maximum size of 5MB")
		return "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, catalogapp.MaxImageSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

// DeleteImage removes a hosted image by storage key or public URL and
// clears the image from any product referencing it.
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	if h.images == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Image hosting is not configured")
		return
	}

	var req catalogapp.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if strings.TrimSpace(req.Key) == "" && strings.TrimSpace(req.URL) == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Either key or url must be provided")
		return
	}

	if err := h.images.DeleteImage(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
