package ports

import (
	"context"

	"github.com/inkwell/blog-service/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthService defines the authentication use cases: account creation, token
// issuance and revocation, and resolving the current user.
type AuthService interface {
	// Register creates an account and issues a token for it.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login verifies credentials and issues a fresh token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Logout revokes the presented token. Idempotent.
	Logout(ctx context.Context, token string) error
	// Me resolves a user id (as set by the auth middleware) to the full account.
	Me(ctx context.Context, userID int64) (*domain.User, error)
}
