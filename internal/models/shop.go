package models

import "time"

type Shop struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:255" json:"description"`
	Image       string `gorm:"size:255" json:"image"`

	// The FK on products.shop_id is generated from this side of the
	// association, so the cascade must be declared here.
	Products []Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopWithCount carries the product_count annotation used by the
// shop listings (admin and public).
type ShopWithCount struct {
	Shop
	ProductCount int64 `json:"product_count"`
}
