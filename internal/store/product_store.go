package store

import (
	"errors"

	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

type productStore struct {
	db *gorm.DB
}

func (s *productStore) CreateProduct(product *models.Product) (*models.Product, error) {
	if err := s.db.First(&models.UserProfile{}, product.SellerID).Error; err != nil {
		return nil, asNotFound(err, "seller with ID %d", product.SellerID)
	}
	if product.CategoryID != nil {
		if err := s.db.First(&models.Category{}, *product.CategoryID).Error; err != nil {
			return nil, asNotFound(err, "category with ID %d", *product.CategoryID)
		}
	}

	product.Status = models.ProductAvailable
	product.ApproveStatus = models.ApprovePending
	if err := s.db.Create(product).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return s.GetProduct(product.ProductID)
}

func (s *productStore) GetProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, productID).Error; err != nil {
		return nil, asNotFound(err, "product with ID %d", productID)
	}
	return &product, nil
}

func (s *productStore) UpdateProduct(productID uint, in *models.Product) (*models.Product, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Condition = in.Condition
	product.ImageURLs = in.ImageURLs
	product.CategoryID = in.CategoryID
	product.IsWanted = in.IsWanted
	product.Location = in.Location

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return s.GetProduct(productID)
}

func (s *productStore) DeleteProduct(productID uint) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}
	product.Status = models.ProductDeleted
	if err := s.db.Save(product).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *productStore) ListProducts(filter ProductFilter) ([]models.Product, error) {
	query := s.db.Preload("Category").
		Where("approve_status = ? AND status = ?", models.ApproveApproved, models.ProductAvailable).
		Order("created_at desc")

	if filter.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *filter.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Product{}, nil
			}
			return nil, apperr.Internal(err)
		}
		query = query.Where("category_id = ?", category.CategoryID)
	}
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Condition != "" {
		query = query.Where("condition LIKE ?", "%"+filter.Condition+"%")
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (s *productStore) ListUserProducts(sellerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Category").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (s *productStore) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

func (s *productStore) ListPendingProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Category").
		Where("approve_status = ?", models.ApprovePending).
		Find(&products).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

// ApproveProduct flips a pending listing to approved. Moderation is
// terminal once resolved either way. The transition is a guarded UPDATE so
// two concurrent moderation calls cannot both pass the precondition.
func (s *productStore) ApproveProduct(productID uint) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}
	if product.ApproveStatus != models.ApprovePending {
		return apperr.Conflict("product %d is already %s", productID, product.ApproveStatus)
	}

	res := s.db.Model(&models.Product{}).
		Where("product_id = ? AND approve_status = ?", productID, models.ApprovePending).
		Update("approve_status", models.ApproveApproved)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("product %d is no longer pending", productID)
	}
	return nil
}

// RejectProduct refuses listings that are already approved or rejected and
// records the moderator's reason.
func (s *productStore) RejectProduct(productID uint, reason string) error {
	product, err := s.GetProduct(productID)
	if err != nil {
		return err
	}
	if product.ApproveStatus != models.ApprovePending {
		return apperr.Conflict("product %d is already %s", productID, product.ApproveStatus)
	}

	res := s.db.Model(&models.Product{}).
		Where("product_id = ? AND approve_status = ?", productID, models.ApprovePending).
		Updates(map[string]interface{}{
			"approve_status":   models.ApproveRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("product %d is no longer pending", productID)
	}
	return nil
}
