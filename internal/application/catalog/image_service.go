package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Mdev98/fast-food-api/internal/domain/catalog"
	"github.com/Mdev98/fast-food-api/internal/domain/shared"
)

// MaxImageSize is the upper bound for product image payloads.
const MaxImageSize = 5 << 20

// allowedImageExtensions whitelists extensions for multipart uploads.
var allowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var (
	drivePathPattern  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveQueryPattern = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// ObjectStorage is the subset of the storage adapter used for product
// images.
type ObjectStorage interface {
	// Upload stores an object and returns its public URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// DeleteObject removes an object from the bucket
	DeleteObject(ctx context.Context, key string) error
	// ObjectExists reports whether an object is present
	ObjectExists(ctx context.Context, key string) (bool, error)
	// KeyFromURL extracts the object key from a hosted URL
	KeyFromURL(rawURL string) (string, bool)
}

// ImageService hosts product images in object storage. Product creation
// never fails because an image host is down; the external URL is kept
// as a fallback.
type ImageService struct {
	products    *ProductService
	productRepo catalog.ProductRepository
	storage     ObjectStorage
	httpClient  *http.Client
	logger      *zap.Logger
}

// ImageServiceOption configures the service.
type ImageServiceOption func(*ImageService)

// WithDownloadClient replaces the HTTP client used to fetch external
// images, mainly for tests.
func WithDownloadClient(client *http.Client) ImageServiceOption {
	return func(s *ImageService) {
		s.httpClient = client
	}
}

// NewImageService creates a new ImageService.
func NewImageService(
	products *ProductService,
	productRepo catalog.ProductRepository,
	storage ObjectStorage,
	logger *zap.Logger,
	opts ...ImageServiceOption,
) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ImageService{
		products:    products,
		productRepo: productRepo,
		storage:     storage,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWithImage downloads an external image, hosts it in object
// storage and creates the product with the hosted URL. When the storage
// upload fails the product is still created with the external URL.
func (s *ImageService) CreateWithImage(ctx context.Context, req CreateProductWithImageRequest) (*ProductResponse, error) {
	imageURL := RewriteDriveURL(req.ImageURL)

	data, contentType, err := s.downloadImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	response, err := s.products.Create(ctx, req.CreateProductRequest)
	if err != nil {
		return nil, err
	}

	key := imageKey(req.Name, extensionForContentType(contentType))
	hostedURL, uploadErr := s.storage.Upload(ctx, key, data, contentType)
	if uploadErr != nil {
		s.logger.Warn("Image upload failed, keeping external URL",
			zap.String("product_id", response.ID.String()),
			zap.String("image_url", imageURL),
			zap.Error(uploadErr),
		)
		hostedURL = imageURL
	}

	return s.setProductImage(ctx, response.ID, hostedURL)
}

// HostImage uploads a standalone image to object storage. The key is
// derived from the product name when one is given, otherwise from the
// file name. Nothing is attached to any product.
func (s *ImageService) HostImage(ctx context.Context, productName, fileName string, data []byte) (*HostedImageResponse, error) {
	ext, contentType, err := validateImagePayload(fileName, data)
	if err != nil {
		return nil, err
	}

	base := productName
	if strings.TrimSpace(base) == "" {
		base = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}

	key := imageKey(base, ext)
	hostedURL, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &HostedImageResponse{
		ImageURL:    hostedURL,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   len(data),
	}, nil
}

// AttachImage hosts a multipart upload and links it to an existing
// product.
func (s *ImageService) AttachImage(ctx context.Context, productID uuid.UUID, fileName string, data []byte) (*ProductResponse, error) {
	ext, contentType, err := validateImagePayload(fileName, data)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := imageKey(product.Name, ext)
	hostedURL, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return s.setProductImage(ctx, productID, hostedURL)
}

// validateImagePayload enforces the size limit and extension whitelist
// for uploaded files.
func validateImagePayload(fileName string, data []byte) (ext, contentType string, err error) {
	if len(data) == 0 {
		return "", "", shared.NewDomainError("INVALID_IMAGE", "Image file is empty")
	}
	if len(data) > MaxImageSize {
		return "", "", shared.NewDomainError("IMAGE_TOO_LARGE", "Image must not exceed 5MB")
	}

	ext = strings.ToLower(filepath.Ext(fileName))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		return "", "", shared.NewDomainError("INVALID_IMAGE",
			"Unsupported image extension. Allowed: png, jpg, jpeg, gif, webp")
	}
	return ext, contentType, nil
}

// DeleteImage removes a hosted image by key or URL and clears the image
// reference on any product still pointing at it.
func (s *ImageService) DeleteImage(ctx context.Context, req DeleteImageRequest) error {
	key := req.Key
	imageURL := req.URL
	if key == "" && imageURL != "" {
		extracted, ok := s.storage.KeyFromURL(imageURL)
		if !ok {
			return shared.NewDomainError("INVALID_IMAGE", "URL does not point to a hosted image")
		}
		key = extracted
	}
	if key == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Either key or url is required")
	}

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("IMAGE_NOT_FOUND", "Hosted image not found")
	}

	if err := s.storage.DeleteObject(ctx, key); err != nil {
		return err
	}

	if imageURL != "" {
		s.clearImageReferences(ctx, imageURL)
	}

	return nil
}

func (s *ImageService) setProductImage(ctx context.Context, productID uuid.UUID, imageURL string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SetImage(imageURL)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.products.invalidateCache(ctx)

	response := ToProductResponse(product)
	return &response, nil
}

// clearImageReferences drops the image URL from every product that
// still references it. Failures are logged, the delete already
// succeeded.
func (s *ImageService) clearImageReferences(ctx context.Context, imageURL string) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.Filters["image_url"] = imageURL

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Warn("Failed to look up products referencing deleted image",
			zap.String("image_url", imageURL),
			zap.Error(err),
		)
		return
	}

	for i := range products {
		products[i].ClearImage()
		if err := s.productRepo.Save(ctx, &products[i]); err != nil {
			s.logger.Warn("Failed to clear image reference",
				zap.String("product_id", products[i].ID.String()),
				zap.Error(err),
			)
		}
	}

	if len(products) > 0 {
		s.products.invalidateCache(ctx)
	}
}

// downloadImage fetches an external image and enforces the content
// type and size limits.
func (s *ImageService) downloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", shared.NewDomainError("INVALID_IMAGE", "Invalid image URL")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", shared.NewDomainError("IMAGE_DOWNLOAD_FAILED", "Could not download image: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", shared.NewDomainError("IMAGE_DOWNLOAD_FAILED",
			fmt.Sprintf("Image host returned status %d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", shared.NewDomainError("INVALID_IMAGE",
			"URL does not point to an image, got content type "+contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return nil, "", shared.NewDomainError("IMAGE_DOWNLOAD_FAILED", "Could not read image body")
	}
	if len(data) > MaxImageSize {
		return nil, "", shared.NewDomainError("IMAGE_TOO_LARGE", "Image must not exceed 5MB")
	}

	return data, contentType, nil
}

// RewriteDriveURL turns a Google Drive share link into a direct
// download link. Other URLs pass through unchanged.
func RewriteDriveURL(rawURL string) string {
	if !strings.Contains(rawURL, "drive.google.com") {
		return rawURL
	}

	if m := drivePathPattern.FindStringSubmatch(rawURL); m != nil {
		return "https://drive.google.com/uc?id=" + m[1] + "&export=download"
	}
	if m := driveQueryPattern.FindStringSubmatch(rawURL); m != nil {
		return "https://drive.google.com/uc?id=" + m[1] + "&export=download"
	}

	return rawURL
}

// imageKey builds the storage key for a product image from a slug of
// the product name plus a short unique suffix.
func imageKey(productName, ext string) string {
	return "products/" + slugify(productName) + "-" + uuid.NewString()[:8] + ext
}

// slugify lowercases a name, folds accents to ASCII and maps anything
// outside [a-z0-9_-] to an underscore.
func slugify(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	folded = strings.ToLower(strings.TrimSpace(folded))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "product"
	}
	return slug
}

// extensionForContentType maps a MIME type to a file extension for
// generated storage keys.
func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
