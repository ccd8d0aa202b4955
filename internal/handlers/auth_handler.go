package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "daechul/internal/errors"
	"daechul/internal/middleware"
	"daechul/internal/services"
)

// AuthHandler handles the demo session endpoints.
type AuthHandler struct {
	users services.UserServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServicer) *AuthHandler {
	return &AuthHandler{users: users}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	WalletAddress string `json:"wallet_address"`
}

// Login godoc
// @Summary Log in to the demo session
// @Description Authenticates the demo user and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if !h.users.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: UserProfile{
			ID:            user.ID,
			Email:         user.Email,
			WalletAddress: user.WalletAddress,
		},
	})
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfile
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserProfile{
		ID:            user.ID,
		Email:         user.Email,
		WalletAddress: user.WalletAddress,
	})
}
