package commerce

import (
	"context"

	"github.com/BruksfildServices01/market-api/internal/models"
)

// Stable business codes surfaced by the repository. Ownership
// mismatches come back as the *_not_found codes on purpose: callers
// must not be able to tell "someone else's shop" from "no such shop".
const (
	CodeShopNotFound    = "shop_not_found"
	CodeProductNotFound = "product_not_found"
	CodeSlugTaken       = "slug_already_exists"
	CodeShopHasSales    = "shop_has_sales"
	CodeProductHasSales = "product_has_sales"
)

// ShopUpdate and ProductUpdate carry partial updates; nil means
// "leave untouched".
type ShopUpdate struct {
	Name        *string
	Description *string
	Image       *string
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

type Repository interface {
	// -------- Shops --------
	ListShopsByOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.ShopWithCount, error)

	ListShopsPublic(
		ctx context.Context,
	) ([]models.ShopWithCount, error)

	CreateShop(
		ctx context.Context,
		shop *models.Shop,
	) error

	// GetShopForOwner matches slug or numeric id, always scoped to the
	// owner. Products come preloaded newest-first.
	GetShopForOwner(
		ctx context.Context,
		ownerID uint,
		slugOrID string,
	) (*models.Shop, error)

	// GetShopBySlug is the unscoped lookup behind the public surface.
	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	UpdateShop(
		ctx context.Context,
		ownerID uint,
		shopID uint,
		fields ShopUpdate,
	) (*models.Shop, error)

	DeleteShop(
		ctx context.Context,
		ownerID uint,
		shopID uint,
	) error

	// -------- Products --------
	GetShopOwned(
		ctx context.Context,
		ownerID uint,
		shopID uint,
	) (*models.Shop, error)

	CreateProduct(
		ctx context.Context,
		product *models.Product,
	) error

	UpdateProduct(
		ctx context.Context,
		ownerID uint,
		productID uint,
		fields ProductUpdate,
	) (*models.Product, error)

	DeleteProduct(
		ctx context.Context,
		ownerID uint,
		productID uint,
	) error

	// -------- Purchases --------
	GetProductByID(
		ctx context.Context,
		productID uint,
	) (*models.Product, error)

	CreatePurchase(
		ctx context.Context,
		purchase *models.Purchase,
	) error

	ListPurchasesByBuyer(
		ctx context.Context,
		buyerID uint,
	) ([]models.Purchase, error)

	// ListSalesBySeller walks the opposite ownership edge: purchases of
	// products whose shop belongs to sellerID. Same rows as the buyer
	// view, never duplicated storage.
	ListSalesBySeller(
		ctx context.Context,
		sellerID uint,
	) ([]models.Purchase, error)
}
