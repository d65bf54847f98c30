package store

import (
	"errors"

	"gorm.io/gorm"

	"marketplace_backend/internal/apperr"
	"marketplace_backend/models"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) CreateUser(user *models.UserProfile, address models.Address, roleID uint) (*models.UserProfile, error) {
	var existing models.UserProfile
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("email %s already registered", user.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	var role models.Role
	if err := s.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("role %d does not exist", roleID)
		}
		return nil, apperr.Internal(err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&address).Error; err != nil {
			return err
		}
		user.AddressID = &address.AddressID
		user.RoleID = &role.RoleID
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user.Address = &address
	user.Role = &role
	return user, nil
}

func (s *userStore) GetUserByID(userID uint) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := s.db.Preload("Address").Preload("Role").First(&user, userID).Error; err != nil {
		return nil, asNotFound(err, "user with ID %d", userID)
	}
	return &user, nil
}

func (s *userStore) GetUserByEmail(email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := s.db.Preload("Address").Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, asNotFound(err, "user with email %s", email)
	}
	return &user, nil
}

func (s *userStore) UpdateUser(userID uint, upd UserUpdate) (*models.UserProfile, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(user, upd)
}

func (s *userStore) applyUpdate(user *models.UserProfile, upd UserUpdate) (*models.UserProfile, error) {
	if upd.FirstName != "" {
		user.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		user.LastName = upd.LastName
	}
	if upd.Email != "" {
		user.Email = upd.Email
	}
	if upd.UserType != "" {
		user.UserType = upd.UserType
	}
	if upd.Badge != "" {
		user.Badge = upd.Badge
	}
	if upd.ProfilePicURL != "" {
		user.ProfilePicURL = upd.ProfilePicURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if upd.Address != nil {
			if user.Address != nil {
				// Address is owned: edit in place, never reassign.
				upd.Address.AddressID = user.Address.AddressID
				if err := tx.Save(upd.Address).Error; err != nil {
					return err
				}
				user.Address = upd.Address
			} else {
				if err := tx.Create(upd.Address).Error; err != nil {
					return err
				}
				user.AddressID = &upd.Address.AddressID
				user.Address = upd.Address
			}
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *userStore) GetModerator(moderatorID uint) (*models.UserProfile, error) {
	user, err := s.GetUserByID(moderatorID)
	if err != nil {
		return nil, err
	}
	if user.RoleName() != "moderator" {
		return nil, apperr.NotFound("moderator with ID %d", moderatorID)
	}
	return user, nil
}

func (s *userStore) UpdateModerator(moderatorID uint, upd UserUpdate) (*models.UserProfile, error) {
	moderator, err := s.GetModerator(moderatorID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(moderator, upd)
}

func (s *userStore) AddFavourite(userID uint, productID int64) error {
	if err := s.db.First(&models.UserProfile{}, userID).Error; err != nil {
		return asNotFound(err, "user with ID %d", userID)
	}
	if err := s.db.First(&models.Product{}, productID).Error; err != nil {
		return asNotFound(err, "product with ID %d", productID)
	}

	var fav models.UserFavourites
	err := s.db.Where("user_id = ?", userID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fav = models.UserFavourites{UserID: userID, ProductIDs: []int64{productID}}
		if err := s.db.Create(&fav).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if fav.Contains(productID) {
		return apperr.Conflict("product %d already in favourites", productID)
	}
	fav.ProductIDs = append(fav.ProductIDs, productID)
	if err := s.db.Save(&fav).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *userStore) RemoveFavourite(userID uint, productID int64) error {
	var fav models.UserFavourites
	if err := s.db.Where("user_id = ?", userID).First(&fav).Error; err != nil {
		return asNotFound(err, "favourites for user %d", userID)
	}

	idx := -1
	for i, id := range fav.ProductIDs {
		if id == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("product %d not in favourites", productID)
	}

	fav.ProductIDs = append(fav.ProductIDs[:idx], fav.ProductIDs[idx+1:]...)
	if err := s.db.Save(&fav).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *userStore) ListFavourites(userID uint) ([]models.Product, error) {
	if err := s.db.First(&models.UserProfile{}, userID).Error; err != nil {
		return nil, asNotFound(err, "user with ID %d", userID)
	}

	var fav models.UserFavourites
	err := s.db.Where("user_id = ?", userID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	products := make([]models.Product, 0, len(fav.ProductIDs))
	for _, productID := range fav.ProductIDs {
		var product models.Product
		if err := s.db.Preload("Category").First(&product, productID).Error; err != nil {
			// Dangling favourites are skipped, not surfaced.
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
