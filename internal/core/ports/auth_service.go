package ports

import (
	"context"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// RegisterInput carries all data needed to create an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Phone    string
	Role     domain.Role
	DealerID string
}

// RegisterResult is returned after account creation. The OTP is delivered
// out of band in production; in mock mode it is echoed for testing.
type RegisterResult struct {
	User *domain.User
	OTP  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	// VerifyOTP activates a pending account.
	VerifyOTP(ctx context.Context, userID, code string) (*domain.User, error)
	// Login returns a signed token and the account on success. Accounts
	// still pending OTP verification are rejected.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
