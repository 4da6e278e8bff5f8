package http

import (
	"net/http"
	"strings"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
	"vidtok/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService ports.AuthService
	navigator   ports.Navigator
}

func NewAuthHandler(authService ports.AuthService, navigator ports.Navigator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		navigator:   navigator,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/signup", h.Signup)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	token, ok := h.authService.Login(c.Request.Context(), req)
	if !ok {
		// Wrong email and wrong password are deliberately indistinguishable
		c.Error(errors.NewUnauthorizedError("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"location": h.navigator.Resolve(domain.LocationFeed, true),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupInput
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	token, ok := h.authService.Signup(c.Request.Context(), req)
	if !ok {
		c.Error(errors.NewUnauthorizedError("signup failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"location": h.navigator.Resolve(domain.LocationFeed, true),
	})
}

// Logout invalidates the presented token. Requests without a token and
// unknown tokens both succeed; logout is idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token != "" && token != header {
		h.authService.Logout(token)
	}

	c.JSON(http.StatusOK, gin.H{
		"location": h.navigator.Resolve(domain.LocationFeed, false),
	})
}

// Navigate resolves a requested location against the auth gate. Unknown
// locations land on the feed.
func (h *AuthHandler) Navigate(c *gin.Context) {
	requested := domain.Location(c.Query("to"))

	_, authenticated := h.authService.CurrentUser(c.Request.Context())
	resolved := h.navigator.Resolve(requested, authenticated)

	c.JSON(http.StatusOK, gin.H{
		"requested": requested,
		"location":  resolved,
	})
}
