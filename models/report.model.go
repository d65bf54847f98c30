package models

import (
	"time"
)

// Report resolution status. pending -> deleted/kept, terminal once resolved.
const (
	ReportPending = "pending"
	ReportDeleted = "deleted"
	ReportKept    = "kept"
)

// ProductReport is a complaint filed against a product.
type ProductReport struct {
	ReportID     uint      `gorm:"primaryKey" json:"report_id"`
	ProductID    uint      `gorm:"index;not null" json:"product_id"`
	ReportedByID uint      `gorm:"not null" json:"reported_by_id"`
	Status       string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Product    Product     `gorm:"foreignKey:ProductID" json:"product"`
	ReportedBy UserProfile `gorm:"foreignKey:ReportedByID" json:"-"`
}

func (ProductReport) TableName() string { return "product_reports" }
