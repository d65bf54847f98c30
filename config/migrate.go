package config

import (
	"log"

	"gorm.io/gorm"

	"marketplace_backend/models"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
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
	)
	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully...")

	// Ensure reference data exists even on normal migration
	SeedRoles(db)
	SeedCategories(db)

	return nil
}
