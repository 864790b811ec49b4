package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront customer. Registration, sessions and profile
// management live in the auth service; this subsystem only reads identities.
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	IsBlocked bool   `json:"is_blocked"`

	Wallet    Wallet    `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
	Addresses []Address `json:"addresses" gorm:"foreignKey:UserID"`
}

// Admin represents a console administrator.
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Address is a shipping destination.
type Address struct {
	gorm.Model
	UserID     uint   `json:"user_id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// ProductVariant is a size+colour stock-keeping unit. The catalog service
// owns the full product record; settlement needs price, image and stock.
type ProductVariant struct {
	gorm.Model
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Stock     int     `json:"stock"`
	Active    bool    `json:"active" gorm:"default:true"`
}
