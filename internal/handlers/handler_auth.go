package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwaqasali/garage_invoice_app/internal/middleware"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/config"
)

type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	h := newAuthHandler(cfg)
	rg.POST("/auth/login", h.login)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// login checks the single configured office account and issues a bearer
// token. Until ADMIN_PASSWORD_HASH is configured every attempt fails.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingErrorResponse(c, err)
		return
	}

	if h.cfg.AdminPasswordHash == "" || req.Username != h.cfg.AdminUser {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	expiresAt := time.Now().Add(h.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		Issuer:    h.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	logger.Info("Login succeeded", "username", req.Username)
	c.JSON(http.StatusOK, loginResponse{Token: signed, ExpiresAt: expiresAt})
}
