package users

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Role constants
const (
	RoleStaff       = "staff"
	RoleRadiologist = "radiologist"
	RoleRadTech     = "radtech"
	RoleAdmin       = "admin"
)

// DefaultRole is assigned to accounts created without an explicit role.
const DefaultRole = RoleRadTech

// Roles lists every valid account role.
var Roles = []string{RoleStaff, RoleRadiologist, RoleRadTech, RoleAdmin}

var (
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials indicates a failed login. The same error covers
	// unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken indicates a missing, malformed or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTooManyAttempts indicates the login rate limit was hit.
	ErrTooManyAttempts = errors.New("too many login attempts, try again later")
)

// User entity
type User struct {
	ID           string    `validate:"required,uuid4"`
	Username     string    `validate:"required,min=3,max=150"`
	Email        string    `validate:"omitempty,email"`
	FirstName    string    `validate:"max=150"`
	LastName     string    `validate:"max=150"`
	Role         string    `validate:"required,oneof=staff radiologist radtech admin"`
	PasswordHash string    `validate:"required"`
	CreatedAt    time.Time `validate:"required"`
	UpdatedAt    time.Time
}

// Validate for validating the User struct
func (u *User) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// FullName returns the display name, falling back to the username when no
// name parts are set.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
	if name == "" {
		return u.Username
	}
	return name
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
