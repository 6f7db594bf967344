package models

import "time"

type Product struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index;not null" json:"shop_id"`
	Shop   Shop `json:"shop,omitempty"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Slug        string  `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `gorm:"size:255" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
