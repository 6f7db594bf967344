package dto

import "time"

// Flattened rows consumed by the admin tables. Prices are rendered as
// fixed two-decimal strings; display fallbacks live in the usecases.
type PurchaseRowDTO struct {
	ID           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	Price        string    `json:"price"`
	ShopName     string    `json:"shop_name"`
}

type SaleRowDTO struct {
	ID           uint      `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	Price        string    `json:"price"`
	ShopName     string    `json:"shop_name"`
	BuyerName    string    `json:"buyer_name"`
	BuyerEmail   string    `json:"buyer_email"`
}
