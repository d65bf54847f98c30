package models

import (
	"time"
)

type Role struct {
	RoleID   uint   `gorm:"primaryKey" json:"role_id"`
	RoleName string `gorm:"size:100;not null" json:"role_name"`
}

func (Role) TableName() string { return "roles" }

// Address is owned by exactly one user; its lifetime is tied to the owner.
type Address struct {
	AddressID  uint   `gorm:"primaryKey" json:"address_id"`
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
}

func (Address) TableName() string { return "addresses" }

type UserProfile struct {
	UserID uint `gorm:"primaryKey" json:"user_id"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"unique;not null;size:100" json:"email"`
	Password  string `gorm:"not null" json:"-"`

	UserType      string    `gorm:"size:50" json:"user_type"`
	IsVerified    bool      `gorm:"default:false" json:"is_verified"`
	Badge         string    `gorm:"size:100" json:"badge"`
	SellCount     int       `gorm:"default:0" json:"sell_count"`
	BuyCount      int       `gorm:"default:0" json:"buy_count"`
	JoinedDate    time.Time `json:"joined_date"`
	ProfilePicURL string    `json:"profile_pic_url"`

	AddressID *uint `json:"-"`
	RoleID    *uint `json:"-"`

	// Relations
	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Role    *Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (UserProfile) TableName() string { return "users" }

// RoleName returns the user's role name or "" when no role is assigned.
func (u *UserProfile) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.RoleName
}

// FullName is the display identity used in chat room listings.
func (u *UserProfile) FullName() string {
	return u.FirstName + " " + u.LastName
}
