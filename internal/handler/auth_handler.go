package handler

import (
	"errors"
	"net/http"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.RegisterRequest  true  "Signup payload"
// @Success      201  {object}  common.APIResponse{data=service.AuthResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	result, err := h.authService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmailTaken), errors.Is(err, common.ErrUsernameTaken):
			common.ErrorResponse(c, 409, err.Error(), nil)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid signup data", err)
		default:
			common.ErrorResponse(c, 500, "Failed to register", err)
		}
		return
	}

	common.CreatedResponse(c, result)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.LoginRequest  true  "Login payload"
// @Success      200  {object}  common.APIResponse{data=service.AuthResult}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, 401, "Invalid email or password", nil)
			return
		}
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, 400, "Invalid login data", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to log in", err)
		return
	}

	setRefreshCookie(c, result.Tokens.RefreshToken)
	common.SuccessResponse(c, result, nil)
}

// GuestSession godoc
// @Summary      Start a read-only guest session
// @Tags         auth
// @Produce      json
// @Success      201  {object}  common.APIResponse{data=service.AuthResult}
// @Router       /auth/guest [post]
func (h *AuthHandler) GuestSession(c *gin.Context) {
	result, err := h.authService.GuestSession()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create guest session", err)
		return
	}

	setRefreshCookie(c, result.Tokens.RefreshToken)
	common.CreatedResponse(c, result)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	// Try cookie first, then JSON body
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req refreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing refresh token", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, err := h.authService.Refresh(refreshToken)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "Failed to refresh token", err)
		return
	}

	setRefreshCookie(c, pair.RefreshToken)
	common.SuccessResponse(c, pair, nil)
}

// Logout godoc
// @Summary      Log out and drop the refresh cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  common.APIResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)
	common.SuccessResponse(c, gin.H{"message": "logged out"}, nil)
}

// Me godoc
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=domain.UserResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, 404, "User not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch user", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie("refresh_token", token, 7*24*3600, "/", "", true, true)
}
