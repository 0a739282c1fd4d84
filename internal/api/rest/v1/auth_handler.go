package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jtsigarra/xferdx/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines the interface for handling authentication operations
type AuthHandler interface {
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
}

// authHandler struct holds the services
type authHandler struct {
	authService users.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService) AuthHandler {
	return &authHandler{
		authService: authService,
	}
}

// Login handles the POST request to authenticate an account
// @Summary Log in with username and password
// @Description Verify credentials and issue a bearer token. Attempts are rate limited per username and client address.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid login data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	session, err := handler.authService.Login(ctx, request.Username, request.Password, ctx.ClientIP())
	if err != nil {
		var errorResponse ErrorResponse
		switch {
		case errors.Is(err, users.ErrTooManyAttempts):
			errorResponse.Message = "too many login attempts, try again later"
			ctx.JSON(http.StatusTooManyRequests, errorResponse)
		case errors.Is(err, users.ErrInvalidCredentials):
			errorResponse.Message = "invalid username or password"
			ctx.JSON(http.StatusUnauthorized, errorResponse)
		default:
			errorResponse.Message = "login failed"
			ctx.JSON(http.StatusInternalServerError, errorResponse)
		}
		return
	}

	ctx.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		ExpiresIn: session.ExpiresIn,
		User:      newUserResponse(session.User),
	})
}

// Me handles the GET request for the authenticated account
// @Summary Get the current account
// @Description Fetch the account belonging to the presented bearer token.
// @Tags Auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	userID := ctx.GetString(ContextUserID)

	user, err := handler.authService.GetByID(ctx, userID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("account with id %s not found", userID)
		ctx.JSON(http.StatusNotFound, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}
