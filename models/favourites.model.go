package models

import (
	"time"
)

// UserFavourites holds one row per user with the set of favourited product
// ids. Membership rules (no duplicates, no dangling removals) are enforced
// by the store, not the schema.
type UserFavourites struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	ProductIDs []int64 `gorm:"serializer:json" json:"product_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User UserProfile `gorm:"foreignKey:UserID" json:"-"`
}

func (UserFavourites) TableName() string { return "user_favourites" }

// Contains reports whether productID is already a member of the set.
func (f *UserFavourites) Contains(productID int64) bool {
	for _, id := range f.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
