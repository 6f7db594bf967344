package purchase

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/dto"
)

// Display fallbacks for partially populated joins. The projection never
// fails a row over a missing name.
const (
	fallbackProductName = "Producto"
	fallbackShopName    = "Tienda"
	fallbackBuyerName   = "Cliente"
)

type ListPurchases struct {
	repo domain.Repository
}

func NewListPurchases(repo domain.Repository) *ListPurchases {
	return &ListPurchases{repo: repo}
}

// Execute returns the buyer view: every purchase made by userID,
// newest first, shaped for display.
func (uc *ListPurchases) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.PurchaseRowDTO, error) {

	purchases, err := uc.repo.ListPurchasesByBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PurchaseRowDTO, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, dto.PurchaseRowDTO{
			ID:           p.ID,
			CreatedAt:    p.CreatedAt,
			ProductName:  orDefault(p.Product.Name, fallbackProductName),
			ProductImage: p.Product.Image,
			Price:        formatPrice(p.Product.Price),
			ShopName:     orDefault(p.Product.Shop.Name, fallbackShopName),
		})
	}
	return rows, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
