package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shopmart/internal/common"
	"shopmart/internal/models"
	"shopmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const productImageBucket = "product-images"

// ProductHandlers handles HTTP requests for the catalog
type ProductHandlers struct {
	catalogService services.CatalogService
	storageService services.MinioService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(catalogService services.CatalogService, storageService services.MinioService) *ProductHandlers {
	return &ProductHandlers{
		catalogService: catalogService,
		storageService: storageService,
	}
}

type productRequest struct {
	Type        string   `json:"type"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	SubCategory *string  `json:"sub_category"`
	ImageSmall  *string  `json:"image_small"`
	ImageMedium *string  `json:"image_medium"`
	ImageLarge  *string  `json:"image_large"`
	Price       *float64 `json:"price"`
	DateAdded   *string  `json:"date_added"`

	ISBN      *string `json:"isbn"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	Publisher *string `json:"publisher"`

	Brand       *string `json:"brand"`
	Colour      *string `json:"colour"`
	Size        *string `json:"size"`
	Gender      *string `json:"gender"`
	AgeGroup    *string `json:"age_group"`
	FashionType *string `json:"fashion_type"`
}

func (req *productRequest) toModel(product *models.Product) error {
	product.Type = models.ProductType(req.Type)
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.SubCategory = req.SubCategory
	product.ImageSmall = req.ImageSmall
	product.ImageMedium = req.ImageMedium
	product.ImageLarge = req.ImageLarge
	product.Price = req.Price
	product.ISBN = req.ISBN
	product.Author = req.Author
	product.Year = req.Year
	product.Publisher = req.Publisher
	product.Brand = req.Brand
	product.Colour = req.Colour
	product.Size = req.Size
	product.Gender = req.Gender
	product.AgeGroup = req.AgeGroup
	product.FashionType = req.FashionType

	if req.DateAdded != nil && *req.DateAdded != "" {
		dateAdded, err := time.Parse("2006-01-02", *req.DateAdded)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date_added format, expected YYYY-MM-DD")
		}
		product.DateAdded = &dateAdded
	}
	return nil
}

// GetProductOrListing handles GET /products/:key. The key is a product
// id when it parses as a UUID; anything else is treated as a variant
// name and answered with a paged listing.
func (h *ProductHandlers) GetProductOrListing(c echo.Context) error {
	ctx := c.Request().Context()
	key := c.Param("key")

	if id, err := uuid.Parse(key); err == nil {
		product, err := h.catalogService.GetProduct(ctx, id)
		if err != nil {
			return common.SendError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}

	page := 1
	pageSize := 10
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}
	if sizeParam := c.QueryParam("pageSize"); sizeParam != "" {
		if s, err := strconv.Atoi(sizeParam); err == nil && s > 0 {
			pageSize = s
		}
	}

	listing, err := h.catalogService.ListByType(ctx, key, page, pageSize)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

// GetProductCategories handles GET /products/categories
func (h *ProductHandlers) GetProductCategories(c echo.Context) error {
	groups, err := h.catalogService.GetProductCategories(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product := &models.Product{}
	if err := req.toModel(product); err != nil {
		return err
	}

	if err := h.catalogService.CreateProduct(ctx, product); err != nil {
		return common.SendError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/products/%s", product.ID))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		productRequest
		ID      string `json:"id"`
		Version int    `json:"version"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	// The body must name the same row as the path.
	if req.ID != "" && req.ID != productID.String() {
		return common.SendValidationError(c, "id", "Body id does not match path id")
	}

	product := &models.Product{ID: productID, Version: req.Version}
	if err := req.toModel(product); err != nil {
		return err
	}

	if err := h.catalogService.UpdateProduct(ctx, product); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.catalogService.DeleteProduct(ctx, productID); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProductImage handles POST /products/:id/image. The uploaded file
// goes to object storage; its URL is stored on the image slot selected
// by the "size" form field.
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	size := c.FormValue("size")
	if size == "" {
		size = "small"
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "Image file is required")
	}

	const maxFileSize = 5 * 1024 * 1024
	if file.Size > maxFileSize {
		return common.SendClientError(c, "File size exceeds maximum limit of 5MB")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open image file")
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return common.SendServerError(c, "Failed to read file content")
	}
	contentType := http.DetectContentType(buffer[:n])

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if !allowedTypes[contentType] {
		return common.SendClientError(c, "Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	}

	if _, err := src.Seek(0, 0); err != nil {
		return common.SendServerError(c, "Failed to rewind image file")
	}

	objectName := fmt.Sprintf("%s/%s/%s", productID, size, file.Filename)
	if err := h.storageService.UploadImage(ctx, productImageBucket, objectName, src, file.Size, contentType); err != nil {
		return common.SendServerError(c, "Failed to store image")
	}

	url, err := h.storageService.GetPresignedURL(productImageBucket, objectName, 7*24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to resolve image URL")
	}

	if err := h.catalogService.SetProductImage(ctx, productID, size, url); err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Image uploaded successfully",
		"url":     url,
	})
}
