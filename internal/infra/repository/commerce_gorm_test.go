package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/market-api/internal/db"
	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/models"
	"github.com/BruksfildServices01/market-api/internal/slug"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, dbpkg.Migrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: "Test " + email, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedShop(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Shop {
	t.Helper()
	s := &models.Shop{UserID: owner.ID, Name: name, Slug: slug.Make(name)}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedProduct(t *testing.T, db *gorm.DB, shop *models.Shop, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{
		ShopID: shop.ID,
		Name:   name,
		Slug:   slug.MakeUnique(name),
		Price:  price,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// --------------------------------------------------
// Shops
// --------------------------------------------------

func TestGetShopForOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@shops.test", "BUSINESS")
	other := seedUser(t, db, "other@shops.test", "BUSINESS")
	shop := seedShop(t, db, owner, "Acme")

	got, err := repo.GetShopForOwner(ctx, owner.ID, "acme")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, got.ID)

	// by numeric id as well
	got, err = repo.GetShopForOwner(ctx, owner.ID, fmt.Sprint(shop.ID))
	require.NoError(t, err)
	assert.Equal(t, shop.ID, got.ID)

	// someone else's shop is indistinguishable from a missing one
	_, err = repo.GetShopForOwner(ctx, other.ID, "acme")
	assert.True(t, httperr.IsBusiness(err, domain.CodeShopNotFound))
}

func TestCreateShopSlugCollisionRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@slug.test", "BUSINESS")

	first := &models.Shop{UserID: owner.ID, Name: "Acme", Slug: slug.Make("Acme")}
	require.NoError(t, repo.CreateShop(ctx, first))

	second := &models.Shop{UserID: owner.ID, Name: "Acme", Slug: slug.Make("Acme")}
	err := repo.CreateShop(ctx, second)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlugTaken))
}

func TestUpdateShopByNonOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@upd.test", "BUSINESS")
	other := seedUser(t, db, "other@upd.test", "BUSINESS")
	shop := seedShop(t, db, owner, "Mia")

	name := "Hacked"
	_, err := repo.UpdateShop(ctx, other.ID, shop.ID, domain.ShopUpdate{Name: &name})
	assert.True(t, httperr.IsBusiness(err, domain.CodeShopNotFound))

	// untouched
	var reloaded models.Shop
	require.NoError(t, db.First(&reloaded, shop.ID).Error)
	assert.Equal(t, "Mia", reloaded.Name)

	updated, err := repo.UpdateShop(ctx, owner.ID, shop.ID, domain.ShopUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hacked", updated.Name)
}

func TestListShopsByOwnerAnnotatesCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@count.test", "BUSINESS")
	stocked := seedShop(t, db, owner, "Stocked")
	empty := seedShop(t, db, owner, "Empty")
	seedProduct(t, db, stocked, "A", 1)
	seedProduct(t, db, stocked, "B", 2)

	// another owner's shop must not leak into the listing
	other := seedUser(t, db, "other@count.test", "BUSINESS")
	seedShop(t, db, other, "Foreign")

	shops, err := repo.ListShopsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, shops, 2)

	byID := map[uint]int64{}
	for _, s := range shops {
		byID[s.ID] = s.ProductCount
	}
	assert.Equal(t, int64(2), byID[stocked.ID])
	assert.Equal(t, int64(0), byID[empty.ID])
}

func TestDeleteShopCascadesProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@del.test", "BUSINESS")
	shop := seedShop(t, db, owner, "Gone")
	product := seedProduct(t, db, shop, "Item", 5)

	require.NoError(t, repo.DeleteShop(ctx, owner.ID, shop.ID))

	var count int64
	db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteShopWithSalesRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	seller := seedUser(t, db, "seller@del.test", "BUSINESS")
	buyer := seedUser(t, db, "buyer@del.test", "CLIENT")
	shop := seedShop(t, db, seller, "Sticky")
	product := seedProduct(t, db, shop, "Sold", 5)

	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{
		UserID:    buyer.ID,
		ProductID: product.ID,
	}))

	err := repo.DeleteShop(ctx, seller.ID, shop.ID)
	assert.True(t, httperr.IsBusiness(err, domain.CodeShopHasSales))

	// chain still resolvable
	var count int64
	db.Model(&models.Shop{}).Where("id = ?", shop.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func TestProductMutationIsTransitivelyScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@prod.test", "BUSINESS")
	other := seedUser(t, db, "other@prod.test", "BUSINESS")
	shop := seedShop(t, db, owner, "Mine")
	product := seedProduct(t, db, shop, "Widget", 9.99)

	price := 1.00
	_, err := repo.UpdateProduct(ctx, other.ID, product.ID, domain.ProductUpdate{Price: &price})
	assert.True(t, httperr.IsBusiness(err, domain.CodeProductNotFound))

	err = repo.DeleteProduct(ctx, other.ID, product.ID)
	assert.True(t, httperr.IsBusiness(err, domain.CodeProductNotFound))

	updated, err := repo.UpdateProduct(ctx, owner.ID, product.ID, domain.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1.00, updated.Price)

	require.NoError(t, repo.DeleteProduct(ctx, owner.ID, product.ID))
}

func TestDeleteProductWithPurchasesRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	seller := seedUser(t, db, "seller@prod.test", "BUSINESS")
	buyer := seedUser(t, db, "buyer@prod.test", "CLIENT")
	shop := seedShop(t, db, seller, "Keep")
	product := seedProduct(t, db, shop, "Bought", 3)

	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{
		UserID:    buyer.ID,
		ProductID: product.ID,
	}))

	err := repo.DeleteProduct(ctx, seller.ID, product.ID)
	assert.True(t, httperr.IsBusiness(err, domain.CodeProductHasSales))
}

// --------------------------------------------------
// Purchases / sales
// --------------------------------------------------

func TestPurchaseVisibleOnBothEdgesOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	seller := seedUser(t, db, "seller@edges.test", "BUSINESS")
	buyer := seedUser(t, db, "buyer@edges.test", "CLIENT")
	bystander := seedUser(t, db, "nobody@edges.test", "CLIENT")

	shop := seedShop(t, db, seller, "Acme")
	product := seedProduct(t, db, shop, "Widget", 9.99)

	require.NoError(t, repo.CreatePurchase(ctx, &models.Purchase{
		UserID:    buyer.ID,
		ProductID: product.ID,
	}))

	purchases, err := repo.ListPurchasesByBuyer(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Widget", purchases[0].Product.Name)
	assert.Equal(t, "Acme", purchases[0].Product.Shop.Name)

	sales, err := repo.ListSalesBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, buyer.ID, sales[0].User.ID)
	assert.Equal(t, "Widget", sales[0].Product.Name)

	// nobody else sees the row, on either edge
	none, err := repo.ListPurchasesByBuyer(ctx, bystander.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = repo.ListSalesBySeller(ctx, bystander.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = repo.ListPurchasesByBuyer(ctx, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSalesOrderedNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommerceGormRepository(db)
	ctx := context.Background()

	seller := seedUser(t, db, "seller@order.test", "BUSINESS")
	buyer := seedUser(t, db, "buyer@order.test", "CLIENT")
	shop := seedShop(t, db, seller, "Orden")
	product := seedProduct(t, db, shop, "Cosa", 2)

	old := models.Purchase{
		UserID:    buyer.ID,
		ProductID: product.ID,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreatePurchase(ctx, &old))

	recent := models.Purchase{
		UserID:    buyer.ID,
		ProductID: product.ID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreatePurchase(ctx, &recent))

	sales, err := repo.ListSalesBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, recent.ID, sales[0].ID)
	assert.Equal(t, old.ID, sales[1].ID)
}
