package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/audit"
	"github.com/BruksfildServices01/market-api/internal/cache"
	domain "github.com/BruksfildServices01/market-api/internal/domain/commerce"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/metrics"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	"github.com/BruksfildServices01/market-api/internal/models"
	"github.com/BruksfildServices01/market-api/internal/slug"
)

type ShopHandler struct {
	repo  domain.Repository
	cache *cache.ShopCache
	audit *audit.Dispatcher
}

func NewShopHandler(repo domain.Repository, shopCache *cache.ShopCache, dispatcher *audit.Dispatcher) *ShopHandler {
	return &ShopHandler{
		repo:  repo,
		cache: shopCache,
		audit: dispatcher,
	}
}

// --------- Requests ---------

type CreateShopRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type UpdateShopRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// --------- Handlers ---------

func (h *ShopHandler) List(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	shops, err := h.repo.ListShopsByOwner(c.Request.Context(), me.UserID)
	if err != nil {
		logging.Get().Error("failed to list shops", zap.Uint("user_id", me.UserID), zap.Error(err))
		httperr.Internal(c, "failed_to_list_shops", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, shops)
}

func (h *ShopHandler) Create(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El nombre es requerido")
		return
	}

	shop := models.Shop{
		UserID:      me.UserID,
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Image:       req.Image,
	}

	if err := h.repo.CreateShop(c.Request.Context(), &shop); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlugTaken) {
			httperr.BadRequest(c, domain.CodeSlugTaken, "Ya existe una tienda con ese nombre.")
			return
		}
		logging.Get().Error("failed to create shop", zap.Uint("user_id", me.UserID), zap.Error(err))
		httperr.Internal(c, "failed_to_create_shop", "Error interno del servidor")
		return
	}

	metrics.ShopsCreatedTotal.Inc()
	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "shop_created",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	c.JSON(http.StatusCreated, shop)
}

// Get accepts either the numeric id or the slug, always scoped to the
// requesting owner. A shop owned by someone else answers 404, never
// 403, so existence of other users' shops is not disclosed.
func (h *ShopHandler) Get(c *gin.Context) {
	me := middleware.CurrentIdentity(c)
	slugOrID := c.Param("id")

	shop, err := h.repo.GetShopForOwner(c.Request.Context(), me.UserID, slugOrID)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeShopNotFound) {
			httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
			return
		}
		logging.Get().Error("failed to get shop", zap.String("shop", slugOrID), zap.Error(err))
		httperr.Internal(c, "failed_to_get_shop", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	shopID, ok := parseID(c, "id")
	if !ok {
		httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	shop, err := h.repo.UpdateShop(c.Request.Context(), me.UserID, shopID, domain.ShopUpdate{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeShopNotFound) {
			httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
			return
		}
		logging.Get().Error("failed to update shop", zap.Uint("shop_id", shopID), zap.Error(err))
		httperr.Internal(c, "failed_to_update_shop", "Error interno del servidor")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "shop_updated",
		Entity:   "shop",
		EntityID: &shop.ID,
	})

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	shopID, ok := parseID(c, "id")
	if !ok {
		httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
		return
	}

	err := h.repo.DeleteShop(c.Request.Context(), me.UserID, shopID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, domain.CodeShopNotFound):
			httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
		case httperr.IsBusiness(err, domain.CodeShopHasSales):
			httperr.BadRequest(c, domain.CodeShopHasSales, "La tienda tiene ventas registradas y no puede eliminarse.")
		default:
			logging.Get().Error("failed to delete shop", zap.Uint("shop_id", shopID), zap.Error(err))
			httperr.Internal(c, "failed_to_delete_shop", "Error interno del servidor")
		}
		return
	}

	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "shop_deleted",
		Entity:   "shop",
		EntityID: &shopID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Tienda eliminada exitosamente"})
}
