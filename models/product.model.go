package models

import (
	"time"
)

// Lifecycle status of a product. Orthogonal to its moderation status:
// an approved product can still become sold or deleted later.
const (
	ProductAvailable = "Available"
	ProductSold      = "Sold"
	ProductDeleted   = "Deleted"
	ProductRemoved   = "Removed" // taken down by a moderator via a report
)

// Moderation (approval) status values, shared by products and delivery
// agents. pending -> approved/rejected, terminal once resolved.
const (
	ApprovePending  = "pending"
	ApproveApproved = "approved"
	ApproveRejected = "rejected"
)

type Category struct {
	CategoryID   uint      `gorm:"primaryKey" json:"category_id"`
	CategoryName string    `gorm:"size:100;not null" json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ProductID   uint     `gorm:"primaryKey" json:"product_id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	Condition   string   `gorm:"size:50" json:"condition"`
	ImageURLs   []string `gorm:"serializer:json" json:"image_urls"`

	SellerID   uint  `gorm:"index;not null" json:"seller_id"`
	CategoryID *uint `json:"category_id"`

	Status   string `gorm:"size:50" json:"status"`
	IsWanted bool   `gorm:"default:false" json:"is_wanted"`
	Location string `gorm:"size:255" json:"location"`

	ApproveStatus   string `gorm:"size:20;default:'pending'" json:"approve_status"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Seller   UserProfile `gorm:"foreignKey:SellerID" json:"-"`
	Category *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string { return "products" }

// CategoryName returns the joined category name or "Unknown" when the
// product has no category.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return "Unknown"
	}
	return p.Category.CategoryName
}
