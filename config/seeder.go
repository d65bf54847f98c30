package config

import (
	"log"

	"gorm.io/gorm"

	"marketplace_backend/models"
)

func SeedRoles(db *gorm.DB) {
	roles := []models.Role{
		{RoleName: "user"},
		{RoleName: "moderator"},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("role_name = ?", role.RoleName).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Failed to seed role %s: %v", role.RoleName, err)
			}
		}
	}
}

func SeedCategories(db *gorm.DB) {
	log.Println("Seeding categories...")

	categories := []models.Category{
		{CategoryName: "Electronics"},
		{CategoryName: "Furniture"},
		{CategoryName: "Clothing"},
		{CategoryName: "Books"},
		{CategoryName: "Sports"},
		{CategoryName: "Automotive"},
		{CategoryName: "Other"},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("category_name = ?", category.CategoryName).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.CategoryName, err)
			} else {
				log.Printf("Category seeded: %s (ID: %d)", category.CategoryName, category.CategoryID)
			}
		}
	}

	log.Println("Seeding complete.")
}
