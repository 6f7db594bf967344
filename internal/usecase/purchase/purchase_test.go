package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/market-api/internal/audit"
	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/identity"
	"github.com/BruksfildServices01/market-api/internal/models"
)

// fakeRepo overrides only what each test needs. Calling anything else
// panics through the embedded nil interface, which is what we want.
type fakeRepo struct {
	domain.Repository

	product    *models.Product
	productErr error
	created    *models.Purchase
	purchases  []models.Purchase
	sales      []models.Purchase
}

func (f *fakeRepo) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.product, nil
}

func (f *fakeRepo) CreatePurchase(ctx context.Context, p *models.Purchase) error {
	p.ID = 42
	f.created = p
	return nil
}

func (f *fakeRepo) ListPurchasesByBuyer(ctx context.Context, buyerID uint) ([]models.Purchase, error) {
	return f.purchases, nil
}

func (f *fakeRepo) ListSalesBySeller(ctx context.Context, sellerID uint) ([]models.Purchase, error) {
	return f.sales, nil
}

func testDispatcher(t *testing.T) *audit.Dispatcher {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return audit.NewDispatcher(audit.New(db))
}

// --------------------------------------------------
// CreatePurchase
// --------------------------------------------------

func TestCreatePurchaseRequiresExactClientRole(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewCreatePurchase(repo, testDispatcher(t))

	// BUSINESS outranks CLIENT everywhere else, but not here
	_, err := uc.Execute(context.Background(), CreatePurchaseInput{
		Buyer:     identity.Identity{UserID: 1, Role: identity.RoleBusiness},
		ProductID: 7,
	})
	assert.True(t, httperr.IsBusiness(err, "client_role_required"))
	assert.Nil(t, repo.created)
}

func TestCreatePurchaseUnknownProduct(t *testing.T) {
	repo := &fakeRepo{productErr: httperr.ErrBusiness(domain.CodeProductNotFound)}
	uc := NewCreatePurchase(repo, testDispatcher(t))

	_, err := uc.Execute(context.Background(), CreatePurchaseInput{
		Buyer:     identity.Identity{UserID: 1, Role: identity.RoleClient},
		ProductID: 999,
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeProductNotFound))
	assert.Nil(t, repo.created)
}

func TestCreatePurchaseInsertsRow(t *testing.T) {
	repo := &fakeRepo{product: &models.Product{ID: 7, Name: "Widget"}}
	uc := NewCreatePurchase(repo, testDispatcher(t))

	p, err := uc.Execute(context.Background(), CreatePurchaseInput{
		Buyer:     identity.Identity{UserID: 3, Role: identity.RoleClient},
		ProductID: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), p.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, uint(3), repo.created.UserID)
	assert.Equal(t, uint(7), repo.created.ProductID)
}

// --------------------------------------------------
// Projections
// --------------------------------------------------

func TestListPurchasesProjection(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{purchases: []models.Purchase{
		{
			ID:        1,
			CreatedAt: now,
			Product: models.Product{
				Name:  "Widget",
				Price: 9.99,
				Shop:  models.Shop{Name: "Acme"},
			},
		},
		// join came back hollow: every display field falls back
		{ID: 2, CreatedAt: now},
	}}

	rows, err := NewListPurchases(repo).Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Widget", rows[0].ProductName)
	assert.Equal(t, "9.99", rows[0].Price)
	assert.Equal(t, "Acme", rows[0].ShopName)

	assert.Equal(t, "Producto", rows[1].ProductName)
	assert.Equal(t, "Tienda", rows[1].ShopName)
	assert.Equal(t, "0.00", rows[1].Price)
}

func TestListSalesBuyerNameResolution(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{sales: []models.Purchase{
		{
			ID:        1,
			CreatedAt: now,
			Product:   models.Product{Name: "Widget", Price: 10, Shop: models.Shop{Name: "Acme"}},
			User:      models.User{Name: "Ana", Email: "ana@test.dev"},
		},
		{
			ID:        2,
			CreatedAt: now,
			Product:   models.Product{Name: "Widget", Price: 10, Shop: models.Shop{Name: "Acme"}},
			User:      models.User{Email: "anon@test.dev"},
		},
		{
			ID:        3,
			CreatedAt: now,
			Product:   models.Product{Name: "Widget", Price: 10, Shop: models.Shop{Name: "Acme"}},
		},
	}}

	rows, err := NewListSales(repo).Execute(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ana", rows[0].BuyerName)
	assert.Equal(t, "anon@test.dev", rows[1].BuyerName)
	assert.Equal(t, "Cliente", rows[2].BuyerName)
	assert.Equal(t, "10.00", rows[0].Price)
}
