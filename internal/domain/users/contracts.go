package users

import (
	"context"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresIn int64
	User      *User
}

// CreateUserCommand carries the fields for account creation. An empty Role
// falls back to DefaultRole.
type CreateUserCommand struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
	Password  string
}

// AuthService defines authentication and account administration operations.
type AuthService interface {
	// Login verifies credentials and issues an access token. Attempts are
	// throttled per username and client address.
	Login(ctx context.Context, username, password, clientAddr string) (*Session, error)

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, userID string) (*User, error)

	// Create registers a new account with a hashed password.
	Create(ctx context.Context, cmd CreateUserCommand) (*User, error)

	// List retrieves all accounts.
	List(ctx context.Context) ([]*User, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create adds a new User to the database
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a User from the database by ID
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByUsername retrieves a User from the database by username
	GetByUsername(ctx context.Context, username string) (*User, error)
	// List lists all Users in the database
	List(ctx context.Context) ([]*User, error)
}

// TokenClaims are the verified claims of an access token.
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	// Issue creates a signed token for the user and returns it together with
	// its lifetime in seconds.
	Issue(user *User) (string, int64, error)
	// Verify checks a token's signature and expiry and returns its claims.
	Verify(token string) (*TokenClaims, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	// Allow records an attempt for key and reports whether it is within the
	// configured window limit.
	Allow(key string) bool
}
