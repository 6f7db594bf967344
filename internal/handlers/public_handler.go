package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/cache"
	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	ucPurchase "github.com/BruksfildServices01/market-api/internal/usecase/purchase"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	repo       domain.Repository
	cache      *cache.ShopCache
	purchaseUC *ucPurchase.CreatePurchase
}

func NewPublicHandler(
	repo domain.Repository,
	shopCache *cache.ShopCache,
	purchaseUC *ucPurchase.CreatePurchase,
) *PublicHandler {
	return &PublicHandler{
		repo:       repo,
		cache:      shopCache,
		purchaseUC: purchaseUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type BuyRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

////////////////////////////////////////////////////////
// SHOPS (no auth)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListShops(c *gin.Context) {
	ctx := c.Request.Context()

	if shops, ok := h.cache.GetPublicShops(ctx); ok {
		c.JSON(http.StatusOK, shops)
		return
	}

	shops, err := h.repo.ListShopsPublic(ctx)
	if err != nil {
		logging.Get().Error("failed to list public shops", zap.Error(err))
		httperr.Internal(c, "failed_to_list_shops", "Error interno del servidor")
		return
	}

	h.cache.SetPublicShops(ctx, shops)
	c.JSON(http.StatusOK, shops)
}

func (h *PublicHandler) GetShop(c *gin.Context) {
	slug := c.Param("slug")

	shop, err := h.repo.GetShopBySlug(c.Request.Context(), slug)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeShopNotFound) {
			httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
			return
		}
		logging.Get().Error("failed to get public shop", zap.String("slug", slug), zap.Error(err))
		httperr.Internal(c, "failed_to_get_shop", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, shop)
}

////////////////////////////////////////////////////////
// BUY (auth, exact CLIENT)
////////////////////////////////////////////////////////

func (h *PublicHandler) Buy(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Producto requerido.")
		return
	}

	purchase, err := h.purchaseUC.Execute(c.Request.Context(), ucPurchase.CreatePurchaseInput{
		Buyer:     me,
		ProductID: req.ProductID,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "client_role_required"):
			httperr.Forbidden(c, "client_role_required", "Esta acción requiere rol de Cliente")
		case httperr.IsBusiness(err, domain.CodeProductNotFound):
			httperr.NotFound(c, domain.CodeProductNotFound, "Producto no encontrado")
		default:
			logging.Get().Error("failed to create purchase",
				zap.Uint("user_id", me.UserID),
				zap.Uint("product_id", req.ProductID),
				zap.Error(err),
			)
			httperr.Internal(c, "failed_to_buy", "Error al comprar")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Compra realizada correctamente",
		"purchase": gin.H{"id": purchase.ID, "product_id": purchase.ProductID},
	})
}
