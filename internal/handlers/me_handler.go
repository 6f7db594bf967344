package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	"github.com/BruksfildServices01/market-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	me := middleware.CurrentIdentity(c)

	var user models.User
	if err := h.db.First(&user, me.UserID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
