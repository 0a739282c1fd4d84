//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jtsigarra/xferdx/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)

	handler := NewAuthHandler(mockAuthService)

	session := &users.Session{
		Token:     "token-abc",
		ExpiresIn: 3600,
		User:      &users.User{ID: "123", Username: "drcruz", Role: users.RoleRadiologist},
	}

	mockAuthService.On("Login", mock.Anything, "drcruz", "s3cret-pass", mock.Anything).
		Return(session, nil)

	body := bytes.NewBufferString(`{"username":"drcruz","password":"s3cret-pass"}`)
	req, _ := http.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token-abc")
	assert.Contains(t, w.Body.String(), "drcruz")
	mockAuthService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials_Error(t *testing.T) {
	mockAuthService := new(MockAuthService)

	handler := NewAuthHandler(mockAuthService)

	mockAuthService.On("Login", mock.Anything, "drcruz", "wrong-pass", mock.Anything).
		Return(nil, users.ErrInvalidCredentials)

	body := bytes.NewBufferString(`{"username":"drcruz","password":"wrong-pass"}`)
	req, _ := http.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}

func TestAuthHandler_Login_Throttled_Error(t *testing.T) {
	mockAuthService := new(MockAuthService)

	handler := NewAuthHandler(mockAuthService)

	mockAuthService.On("Login", mock.Anything, "drcruz", "wrong-pass", mock.Anything).
		Return(nil, users.ErrTooManyAttempts)

	body := bytes.NewBufferString(`{"username":"drcruz","password":"wrong-pass"}`)
	req, _ := http.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAuthHandler_Login_MissingFields_Error(t *testing.T) {
	mockAuthService := new(MockAuthService)

	handler := NewAuthHandler(mockAuthService)

	body := bytes.NewBufferString(`{"username":"drcruz"}`)
	req, _ := http.NewRequest("POST", "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid login data")
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)

	handler := NewAuthHandler(mockAuthService)

	user := &users.User{ID: "123", Username: "drcruz", Role: users.RoleRadiologist}
	mockAuthService.On("GetByID", mock.Anything, "123").Return(user, nil)

	req, _ := http.NewRequest("GET", "/auth/me", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(ContextUserID, "123")

	handler.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "drcruz")
	mockAuthService.AssertExpectations(t)
}
