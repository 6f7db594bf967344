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

type ProductHandler struct {
	repo  domain.Repository
	cache *cache.ShopCache
	audit *audit.Dispatcher
}

func NewProductHandler(repo domain.Repository, shopCache *cache.ShopCache, dispatcher *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{
		repo:  repo,
		cache: shopCache,
		audit: dispatcher,
	}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	ShopID      uint    `json:"shop_id" binding:"required"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) Create(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nombre, precio y tienda son requeridos")
		return
	}

	// The target shop must belong to the caller. Not-owned and
	// nonexistent are indistinguishable on purpose.
	shop, err := h.repo.GetShopOwned(c.Request.Context(), me.UserID, req.ShopID)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeShopNotFound) {
			httperr.NotFound(c, domain.CodeShopNotFound, "Tienda no encontrada")
			return
		}
		logging.Get().Error("failed to verify shop ownership", zap.Uint("shop_id", req.ShopID), zap.Error(err))
		httperr.Internal(c, "failed_to_create_product", "Error interno del servidor")
		return
	}

	product := models.Product{
		ShopID:      shop.ID,
		Name:        req.Name,
		Slug:        slug.MakeUnique(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}

	if err := h.repo.CreateProduct(c.Request.Context(), &product); err != nil {
		logging.Get().Error("failed to create product", zap.Uint("shop_id", shop.ID), zap.Error(err))
		httperr.Internal(c, "failed_to_create_product", "Error interno del servidor")
		return
	}

	metrics.ProductsCreatedTotal.Inc()
	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

// Ownership runs through the parent shop and is re-verified inside the
// repository on every call.
func (h *ProductHandler) Update(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	productID, ok := parseID(c, "id")
	if !ok {
		httperr.NotFound(c, domain.CodeProductNotFound, "Producto no encontrado")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos en la solicitud.")
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		httperr.BadRequest(c, "invalid_price", "El precio debe ser mayor que cero.")
		return
	}

	product, err := h.repo.UpdateProduct(c.Request.Context(), me.UserID, productID, domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeProductNotFound) {
			httperr.NotFound(c, domain.CodeProductNotFound, "Producto no encontrado")
			return
		}
		logging.Get().Error("failed to update product", zap.Uint("product_id", productID), zap.Error(err))
		httperr.Internal(c, "failed_to_update_product", "Error interno del servidor")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	productID, ok := parseID(c, "id")
	if !ok {
		httperr.NotFound(c, domain.CodeProductNotFound, "Producto no encontrado")
		return
	}

	err := h.repo.DeleteProduct(c.Request.Context(), me.UserID, productID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, domain.CodeProductNotFound):
			httperr.NotFound(c, domain.CodeProductNotFound, "Producto no encontrado")
		case httperr.IsBusiness(err, domain.CodeProductHasSales):
			httperr.BadRequest(c, domain.CodeProductHasSales, "El producto tiene compras registradas y no puede eliminarse.")
		default:
			logging.Get().Error("failed to delete product", zap.Uint("product_id", productID), zap.Error(err))
			httperr.Internal(c, "failed_to_delete_product", "Error interno del servidor")
		}
		return
	}

	h.cache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &me.UserID,
		Action:   "product_deleted",
		Entity:   "product",
		EntityID: &productID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado exitosamente"})
}
