package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jtsigarra/xferdx/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for handling account administration
type UserHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
}

// userHandler struct holds the services
type userHandler struct {
	authService users.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService users.AuthService) UserHandler {
	return &userHandler{
		authService: authService,
	}
}

// Create handles the POST request to register an account
// @Summary Create an account
// @Description Register a new account. An empty role falls back to radtech.
// @Tags User
// @Accept json
// @Produce json
// @Param requestBody body CreateUserRequest true "Account data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (handler *userHandler) Create(ctx *gin.Context) {
	var request CreateUserRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("invalid account data: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if err := request.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	user, err := handler.authService.Create(ctx, users.CreateUserCommand{
		Username:  request.Username,
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      request.Role,
		Password:  request.Password,
	})
	if err != nil {
		var errorResponse ErrorResponse
		if errors.Is(err, users.ErrDuplicateUsername) {
			errorResponse.Message = fmt.Sprintf("username %s is already taken", request.Username)
			ctx.JSON(http.StatusConflict, errorResponse)
			return
		}
		errorResponse.Message = fmt.Sprintf("error creating account: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// List handles the GET request to list accounts
// @Summary List accounts
// @Description Fetch all accounts ordered by username.
// @Tags User
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (handler *userHandler) List(ctx *gin.Context) {
	accounts, err := handler.authService.List(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = "could not list accounts"
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	listResponse := []UserResponse{}
	for _, user := range accounts {
		listResponse = append(listResponse, newUserResponse(user))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
