package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/models"
)

type CommerceGormRepository struct {
	db *gorm.DB
}

func NewCommerceGormRepository(db *gorm.DB) *CommerceGormRepository {
	return &CommerceGormRepository{db: db}
}

func newestProducts(db *gorm.DB) *gorm.DB {
	return db.Order("products.created_at DESC")
}

// Postgres violations arrive translated by gorm; sqlite reports FK
// failures raised during a cascade with an error code the translator
// does not map, so the message is matched as a fallback.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// --------------------------------------------------
// Shops
// --------------------------------------------------

func (r *CommerceGormRepository) ListShopsByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.ShopWithCount, error) {

	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}

	return r.annotateCounts(ctx, shops)
}

func (r *CommerceGormRepository) ListShopsPublic(
	ctx context.Context,
) ([]models.ShopWithCount, error) {

	var shops []models.Shop
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, err
	}

	return r.annotateCounts(ctx, shops)
}

func (r *CommerceGormRepository) annotateCounts(
	ctx context.Context,
	shops []models.Shop,
) ([]models.ShopWithCount, error) {

	out := make([]models.ShopWithCount, 0, len(shops))
	if len(shops) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(shops))
	for _, s := range shops {
		ids = append(ids, s.ID)
	}

	type shopCount struct {
		ShopID uint
		N      int64
	}

	var counts []shopCount
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("shop_id, COUNT(*) AS n").
		Where("shop_id IN ?", ids).
		Group("shop_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byShop := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byShop[c.ShopID] = c.N
	}

	for _, s := range shops {
		out = append(out, models.ShopWithCount{
			Shop:         s,
			ProductCount: byShop[s.ID],
		})
	}
	return out, nil
}

func (r *CommerceGormRepository) CreateShop(
	ctx context.Context,
	shop *models.Shop,
) error {

	err := r.db.WithContext(ctx).Create(shop).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(domain.CodeSlugTaken)
	}
	return err
}

func (r *CommerceGormRepository) GetShopForOwner(
	ctx context.Context,
	ownerID uint,
	slugOrID string,
) (*models.Shop, error) {

	id, _ := strconv.ParseUint(slugOrID, 10, 64)

	var shop models.Shop
	err := r.db.WithContext(ctx).
		Preload("Products", newestProducts).
		Where("user_id = ? AND (slug = ? OR id = ?)", ownerID, slugOrID, uint(id)).
		First(&shop).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CommerceGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	var shop models.Shop
	err := r.db.WithContext(ctx).
		Preload("Products", newestProducts).
		Where("slug = ?", slug).
		First(&shop).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CommerceGormRepository) UpdateShop(
	ctx context.Context,
	ownerID uint,
	shopID uint,
	fields domain.ShopUpdate,
) (*models.Shop, error) {

	updates := map[string]any{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Image != nil {
		updates["image"] = *fields.Image
	}

	// Ownership is enforced inside the UPDATE itself, so there is no
	// window between the check and the write.
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Shop{}).
			Where("id = ? AND user_id = ?", shopID, ownerID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, httperr.ErrBusiness(domain.CodeShopNotFound)
		}
	}

	var shop models.Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", shopID, ownerID).
		First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CommerceGormRepository) DeleteShop(
	ctx context.Context,
	ownerID uint,
	shopID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", shopID, ownerID).
		Delete(&models.Shop{})

	if isForeignKeyViolation(res.Error) {
		// Products cascade, but purchases RESTRICT the chain: a shop
		// whose products were ever bought cannot be removed.
		return httperr.ErrBusiness(domain.CodeShopHasSales)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeShopNotFound)
	}
	return nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (r *CommerceGormRepository) GetShopOwned(
	ctx context.Context,
	ownerID uint,
	shopID uint,
) (*models.Shop, error) {

	var shop models.Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", shopID, ownerID).
		First(&shop).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeShopNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CommerceGormRepository) CreateProduct(
	ctx context.Context,
	product *models.Product,
) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *CommerceGormRepository) ownedShopIDs(ownerID uint) *gorm.DB {
	return r.db.Model(&models.Shop{}).Select("id").Where("user_id = ?", ownerID)
}

func (r *CommerceGormRepository) UpdateProduct(
	ctx context.Context,
	ownerID uint,
	productID uint,
	fields domain.ProductUpdate,
) (*models.Product, error) {

	updates := map[string]any{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Price != nil {
		updates["price"] = *fields.Price
	}
	if fields.Image != nil {
		updates["image"] = *fields.Image
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND shop_id IN (?)", productID, r.ownedShopIDs(ownerID)).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, httperr.ErrBusiness(domain.CodeProductNotFound)
		}
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id IN (?)", productID, r.ownedShopIDs(ownerID)).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CommerceGormRepository) DeleteProduct(
	ctx context.Context,
	ownerID uint,
	productID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND shop_id IN (?)", productID, r.ownedShopIDs(ownerID)).
		Delete(&models.Product{})

	if isForeignKeyViolation(res.Error) {
		return httperr.ErrBusiness(domain.CodeProductHasSales)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeProductNotFound)
	}
	return nil
}

// --------------------------------------------------
// Purchases
// --------------------------------------------------

func (r *CommerceGormRepository) GetProductByID(
	ctx context.Context,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	err := r.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CommerceGormRepository) CreatePurchase(
	ctx context.Context,
	purchase *models.Purchase,
) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *CommerceGormRepository) ListPurchasesByBuyer(
	ctx context.Context,
	buyerID uint,
) ([]models.Purchase, error) {

	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Product.Shop").
		Where("user_id = ?", buyerID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *CommerceGormRepository) ListSalesBySeller(
	ctx context.Context,
	sellerID uint,
) ([]models.Purchase, error) {

	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = purchases.product_id").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("shops.user_id = ?", sellerID).
		Preload("Product.Shop").
		Preload("User").
		Order("purchases.created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// Compile-time check
var _ domain.Repository = (*CommerceGormRepository)(nil)
