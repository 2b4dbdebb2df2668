package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// ------------------------------------------------------------------ //
// Stubs

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
	err    error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = "user_" + string(rune('0'+r.nextID))
	r.users[clone.ID] = &clone
	stored := clone
	return &stored, nil
}

func (r *stubAuthRepo) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

type stubOTPStore struct {
	codes map[string]string
}

func newStubOTPStore() *stubOTPStore {
	return &stubOTPStore{codes: make(map[string]string)}
}

func (s *stubOTPStore) Issue(_ context.Context, userID string) (string, error) {
	s.codes[userID] = "482913"
	return "482913", nil
}

func (s *stubOTPStore) Verify(_ context.Context, userID, code string) error {
	if s.codes[userID] != code {
		return domain.ErrInvalidOTP
	}
	delete(s.codes, userID)
	return nil
}

func newAuthFixture() (*AuthService, *stubAuthRepo, *stubOTPStore) {
	repo := newStubAuthRepo()
	otp := newStubOTPStore()
	return NewAuthService(repo, otp, "test-secret", time.Hour), repo, otp
}

// ------------------------------------------------------------------ //
// Register tests

func TestRegister_IssuesOTP(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.OTP == "" {
		t.Error("no OTP issued")
	}
	if res.User.Status != domain.UserPendingOTP {
		t.Errorf("status = %s, want pending_otp", res.User.Status)
	}
	if res.User.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("hunter2hunter2")) != nil {
		t.Error("stored hash does not match the password")
	}
	if len(repo.users) != 1 {
		t.Errorf("stored users = %d, want 1", len(repo.users))
	}
}

func TestRegister_AdminSelfRegistrationRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "boss", Password: "secretsecret", Role: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegister_DealerNeedsDealerID(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "hardware", Password: "secretsecret", Role: domain.RoleDealer,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "hardware", Password: "secretsecret", Role: domain.RoleDealer, DealerID: "dealer_a",
	})
	if err != nil {
		t.Fatalf("Register with dealer_id: %v", err)
	}
	if res.User.DealerID != "dealer_a" {
		t.Errorf("dealer_id = %q, want dealer_a", res.User.DealerID)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()
	in := ports.RegisterInput{Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

// ------------------------------------------------------------------ //
// VerifyOTP and Login tests

func TestVerifyOTP_ActivatesAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.VerifyOTP(context.Background(), res.User.ID, res.OTP)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if u.Status != domain.UserActive {
		t.Errorf("status = %s, want active", u.Status)
	}
	if repo.users[res.User.ID].Status != domain.UserActive {
		t.Error("activation not persisted")
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.VerifyOTP(context.Background(), res.User.ID, "000000"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Errorf("err = %v, want ErrInvalidOTP", err)
	}
}

func TestLogin_PendingAccountRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "jane", "hunter2hunter2")
	if !errors.Is(err, domain.ErrNotVerified) {
		t.Errorf("err = %v, want ErrNotVerified", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "jane", Password: "hunter2hunter2", Role: domain.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), res.User.ID, res.OTP); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "jane", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_TokenClaims(t *testing.T) {
	svc, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "hardware", Password: "secretsecret", Role: domain.RoleDealer, DealerID: "dealer_a",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), res.User.ID, res.OTP); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "hardware", "secretsecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "hardware" {
		t.Errorf("user = %q, want hardware", user.Username)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != string(domain.RoleDealer) {
		t.Errorf("role claim = %v, want dealer", claims["role"])
	}
	if claims["dealer_id"] != "dealer_a" {
		t.Errorf("dealer_id claim = %v, want dealer_a", claims["dealer_id"])
	}
	if claims["user_id"] != user.ID {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], user.ID)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token carries no expiry")
	}
}
