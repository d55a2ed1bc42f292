package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-service/internal/api/metrics"
	"github.com/inkwell/blog-service/internal/core/domain"
	"github.com/inkwell/blog-service/internal/core/ports"
)

// AuthService implements registration, login, logout and current-user lookup.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenStore
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register creates the account and immediately issues a token, so a fresh
// registration behaves exactly like a login.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if verr := validateRegistration(input); !verr.Empty() {
		return nil, "", verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, "", domain.NewValidationError().Add("email", "the email has already been taken")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, created.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and issues a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// Logout revokes the token. Revoking an already-revoked token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Me resolves the authenticated user id back to the full account record.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func validateRegistration(input ports.RegisterInput) *domain.ValidationError {
	verr := domain.NewValidationError()
	if input.Name == "" {
		verr.Add("name", "the name field is required")
	} else if len(input.Name) > 255 {
		verr.Add("name", "the name may not be greater than 255 characters")
	}
	if input.Email == "" {
		verr.Add("email", "the email field is required")
	}
	if input.Password == "" {
		verr.Add("password", "the password field is required")
	} else if len(input.Password) < 8 {
		verr.Add("password", "the password must be at least 8 characters")
	}
	if input.Password != input.PasswordConfirmation {
		verr.Add("password", "the password confirmation does not match")
	}
	return verr
}
