package identity

import (
	"fmt"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/users"
	"github.com/jtsigarra/xferdx/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

type jwtTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJwtTokenManager creates a TokenManager signing HS256 tokens with the
// configured secret and lifetime.
func NewJwtTokenManager(settings *config.AuthSettings) (users.TokenManager, error) {
	if settings.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &jwtTokenManager{
		secret: []byte(settings.JWTSecret),
		ttl:    time.Duration(settings.TokenTTLMinutes) * time.Minute,
	}, nil
}

func (m *jwtTokenManager) Issue(user *users.User) (string, int64, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      jwt.NewNumericDate(now),
		"exp":      jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(m.ttl.Seconds()), nil
}

func (m *jwtTokenManager) Verify(token string) (*users.TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", users.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, users.ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return nil, users.ErrInvalidToken
	}

	return &users.TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}
