package ports

import (
	"context"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateStatus flips the account lifecycle state (OTP verification).
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
}

// OTPStore issues and verifies short-lived one-time codes.
type OTPStore interface {
	// Issue stores a code for the user and returns it. A previously
	// issued code for the same user is replaced.
	Issue(ctx context.Context, userID string) (string, error)
	// Verify consumes the code. A wrong or expired code returns
	// domain.ErrInvalidOTP.
	Verify(ctx context.Context, userID, code string) error
}
