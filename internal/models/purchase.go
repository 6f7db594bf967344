package models

import "time"

// Purchase is append-only: there is no update or cancel path. The same
// row backs both the buyer's purchase history and the seller's sales
// list (Purchase -> Product -> Shop -> User). RESTRICT on the product
// FK keeps that chain resolvable for as long as the purchase exists.
type Purchase struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
