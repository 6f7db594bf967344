package purchase

import (
	"context"

	"github.com/BruksfildServices01/market-api/internal/audit"
	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/identity"
	"github.com/BruksfildServices01/market-api/internal/metrics"
	"github.com/BruksfildServices01/market-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreatePurchaseInput struct {
	Buyer     identity.Identity
	ProductID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreatePurchase struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreatePurchase(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreatePurchase {
	return &CreatePurchase{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Buying is an exact-role check, not a minimum: a BUSINESS account is
// rejected even though it outranks CLIENT everywhere else.
func (uc *CreatePurchase) Execute(
	ctx context.Context,
	in CreatePurchaseInput,
) (*models.Purchase, error) {

	if in.Buyer.Role != identity.RoleClient {
		return nil, httperr.ErrBusiness("client_role_required")
	}

	product, err := uc.repo.GetProductByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// Unconditional insert: no stock, no payment step. Concurrent
	// purchases of the same product are independent rows.
	p := &models.Purchase{
		UserID:    in.Buyer.UserID,
		ProductID: product.ID,
	}

	if err := uc.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	metrics.PurchasesCreatedTotal.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Buyer.UserID,
		Action:   "purchase_created",
		Entity:   "purchase",
		EntityID: &p.ID,
	})

	return p, nil
}
