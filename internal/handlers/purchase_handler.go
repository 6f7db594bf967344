package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	ucPurchase "github.com/BruksfildServices01/market-api/internal/usecase/purchase"
)

// PurchaseHandler serves the two read sides projected from the same
// purchase rows: "my purchases" (buyer edge) and "my sales" (seller
// edge, through product -> shop -> owner).
type PurchaseHandler struct {
	listPurchasesUC *ucPurchase.ListPurchases
	listSalesUC     *ucPurchase.ListSales
}

func NewPurchaseHandler(
	listPurchasesUC *ucPurchase.ListPurchases,
	listSalesUC *ucPurchase.ListSales,
) *PurchaseHandler {
	return &PurchaseHandler{
		listPurchasesUC: listPurchasesUC,
		listSalesUC:     listSalesUC,
	}
}

func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	rows, err := h.listPurchasesUC.Execute(c.Request.Context(), me.UserID)
	if err != nil {
		logging.Get().Error("failed to list purchases", zap.Uint("user_id", me.UserID), zap.Error(err))
		httperr.Internal(c, "failed_to_list_purchases", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *PurchaseHandler) ListSales(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	rows, err := h.listSalesUC.Execute(c.Request.Context(), me.UserID)
	if err != nil {
		logging.Get().Error("failed to list sales", zap.Uint("user_id", me.UserID), zap.Error(err))
		httperr.Internal(c, "failed_to_list_sales", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, rows)
}
