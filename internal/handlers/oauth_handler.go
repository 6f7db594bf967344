package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/market-api/internal/config"
	"github.com/BruksfildServices01/market-api/internal/httperr"
	"github.com/BruksfildServices01/market-api/internal/identity"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/models"
	"github.com/BruksfildServices01/market-api/internal/oauth"
)

type OAuthHandler struct {
	db     *gorm.DB
	config *config.Config
	github *oauth.GitHubClient
}

func NewOAuthHandler(db *gorm.DB, cfg *config.Config, gh *oauth.GitHubClient) *OAuthHandler {
	return &OAuthHandler{db: db, config: cfg, github: gh}
}

// Login redirects the browser to GitHub's consent page.
func (h *OAuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.github.AuthorizeURL())
}

// Callback finishes the code flow: exchange, profile fetch, then
// provision-or-reconcile. First OAuth login creates a CLIENT user with
// no password hash.
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || !h.github.ValidateState(state) {
		httperr.BadRequest(c, "invalid_oauth_callback", "Callback de OAuth inválido.")
		return
	}

	ctx := c.Request.Context()

	token, err := h.github.Exchange(ctx, code)
	if err != nil {
		logging.Get().Error("github token exchange failed", zap.Error(err))
		httperr.BadRequest(c, "oauth_exchange_failed", "No se pudo validar el código de GitHub.")
		return
	}

	ghUser, err := h.github.FetchUser(ctx, token)
	if err != nil {
		logging.Get().Error("github profile fetch failed", zap.Error(err))
		httperr.Internal(c, "oauth_profile_failed", "Error interno del servidor")
		return
	}

	// Email is mandatory: there is no passwordless-without-email
	// identity in this system.
	if ghUser.Email == "" {
		httperr.BadRequest(c, "email_required", "GitHub no entregó un correo verificado.")
		return
	}

	name := ghUser.Name
	if name == "" {
		name = ghUser.Login
	}

	user, err := h.reconcileUser(ghUser.Email, name)
	if err != nil {
		logging.Get().Error("github user reconciliation failed", zap.Error(err))
		httperr.Internal(c, "oauth_user_failed", "Error interno del servidor")
		return
	}

	jwtToken, err := GenerateToken(h.config, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error interno del servidor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": jwtToken,
	})
}

// reconcileUser is idempotent: repeating a callback only re-applies the
// same name update.
func (h *OAuthHandler) reconcileUser(email, name string) (*models.User, error) {
	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: email,
			Name:  name,
			Role:  string(identity.RoleClient),
		}
		if err := h.db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if user.Name != name && name != "" {
		if err := h.db.Model(&user).Update("name", name).Error; err != nil {
			return nil, err
		}
		user.Name = name
	}

	return &user, nil
}
