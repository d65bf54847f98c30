package handlers

import (
	"github.com/gofiber/fiber/v2"

	"marketplace_backend/internal/store"
	"marketplace_backend/models"
)

type ProductHandler struct {
	Products store.ProductStore
}

func NewProductHandler(products store.ProductStore) *ProductHandler {
	return &ProductHandler{Products: products}
}

// ProductRequest defines the payload for creating or updating a listing
type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls"`
	SellerID    uint     `json:"seller_id" validate:"required"`
	CategoryID  *uint    `json:"category_id"`
	IsWanted    bool     `json:"is_wanted"`
	Location    string   `json:"location"`
}

func (r *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Condition:   r.Condition,
		ImageURLs:   r.ImageURLs,
		SellerID:    r.SellerID,
		CategoryID:  r.CategoryID,
		IsWanted:    r.IsWanted,
		Location:    r.Location,
	}
}

// GetProducts - GET /api/products
// Public listing: only approved, available products, newest first.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := store.ProductFilter{
		Name:      c.Query("name"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
	}
	if id := c.QueryInt("category_id", 0); id > 0 {
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	if min := c.QueryFloat("min_price", -1); min >= 0 {
		filter.MinPrice = &min
	}
	if max := c.QueryFloat("max_price", -1); max >= 0 {
		filter.MaxPrice = &max
	}

	products, err := h.Products.ListProducts(filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Products fetched", products)
}

// GetProduct - GET /api/products/:productID
// Returns the product regardless of lifecycle or moderation status.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.Products.GetProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product fetched", product)
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	product, err := h.Products.CreateProduct(req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Product created, awaiting approval", product)
}

// UpdateProduct - PUT /api/products/:productID
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	product, err := h.Products.UpdateProduct(productID, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product updated", product)
}

// DeleteProduct - DELETE /api/products/:productID
// Soft delete: the record stays, its lifecycle status becomes Deleted.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := paramUint(c, "productID")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Products.DeleteProduct(productID); err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Product deleted", nil)
}

// GetCategories - GET /api/products/categories
func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Products.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Categories fetched", categories)
}
