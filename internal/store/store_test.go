package store

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace_backend/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Address{},
		&models.UserProfile{},
		&models.UserFavourites{},
		&models.Category{},
		&models.Product{},
		&models.ProductReport{},
		&models.DeliveryAgent{},
		&models.DeliveryRequest{},
		&models.ChatMessage{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.UserProfile {
	t.Helper()
	user := models.UserProfile{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProduct(t *testing.T, db *gorm.DB, sellerID uint, name string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		Price:         25,
		Condition:     "used",
		SellerID:      sellerID,
		Status:        models.ProductAvailable,
		ApproveStatus: models.ApprovePending,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createAgent(t *testing.T, db *gorm.DB, email, phone, status string) *models.DeliveryAgent {
	t.Helper()
	agent := models.DeliveryAgent{
		FirstName:      "Agent",
		LastName:       "Smith",
		Email:          email,
		Password:       "hashed",
		PhoneNumber:    phone,
		TransportMode:  "bike",
		ApprovalStatus: status,
	}
	require.NoError(t, db.Create(&agent).Error)
	return &agent
}

func createRequest(t *testing.T, db *gorm.DB, productID, buyerID uint, status string) *models.DeliveryRequest {
	t.Helper()
	req := models.DeliveryRequest{
		ProductID:       productID,
		SellerID:        1,
		BuyerID:         buyerID,
		PickupLocation:  "Campusallee 1",
		DropoffLocation: "Hauptstr. 9",
		Status:          status,
	}
	require.NoError(t, db.Create(&req).Error)
	return &req
}
