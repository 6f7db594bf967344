package purchase

import (
	"context"

	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/dto"
	"github.com/BruksfildServices01/market-api/internal/models"
)

type ListSales struct {
	repo domain.Repository
}

func NewListSales(repo domain.Repository) *ListSales {
	return &ListSales{repo: repo}
}

// Execute returns the seller view: purchases of products whose shop is
// owned by userID, joined back through the ownership chain and shaped
// with the buyer's display name resolved.
func (uc *ListSales) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.SaleRowDTO, error) {

	sales, err := uc.repo.ListSalesBySeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.SaleRowDTO, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, dto.SaleRowDTO{
			ID:           s.ID,
			CreatedAt:    s.CreatedAt,
			ProductName:  orDefault(s.Product.Name, fallbackProductName),
			ProductImage: s.Product.Image,
			Price:        formatPrice(s.Product.Price),
			ShopName:     orDefault(s.Product.Shop.Name, fallbackShopName),
			BuyerName:    buyerDisplayName(s.User),
			BuyerEmail:   s.User.Email,
		})
	}
	return rows, nil
}

// Name first, then email, then the generic placeholder.
func buyerDisplayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return fallbackBuyerName
}
