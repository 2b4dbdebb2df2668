package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

type stubAuthService struct {
	registerResult *ports.RegisterResult
	registerErr    error
	verifyUser     *domain.User
	verifyErr      error
	loginToken     string
	loginUser      *domain.User
	loginErr       error

	lastRegister ports.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	s.lastRegister = in
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) VerifyOTP(_ context.Context, _, _ string) (*domain.User, error) {
	return s.verifyUser, s.verifyErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.loginToken, s.loginUser, s.loginErr
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_Success(t *testing.T) {
	svc := &stubAuthService{
		registerResult: &ports.RegisterResult{
			User: &domain.User{ID: "user_1", Username: "jane", Role: domain.RoleGeneralUser, Status: domain.UserPendingOTP},
			OTP:  "482913",
		},
	}
	h := NewAuthHandler(svc, false)
	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"username":"jane","password":"hunter2hunter2","role":"general_user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.Username != "jane" {
		t.Errorf("response user = %+v", resp.User)
	}
	if resp.OTP != "" {
		t.Error("OTP leaked outside mock mode")
	}
	if svc.lastRegister.Role != domain.RoleGeneralUser {
		t.Errorf("role passed to service = %q", svc.lastRegister.Role)
	}
}

func TestRegister_MockModeEchoesOTP(t *testing.T) {
	svc := &stubAuthService{
		registerResult: &ports.RegisterResult{
			User: &domain.User{ID: "user_1", Username: "jane"},
			OTP:  "482913",
		},
	}
	h := NewAuthHandler(svc, true)
	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"username":"jane","password":"hunter2hunter2","role":"general_user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OTP != "482913" {
		t.Errorf("otp = %q, want echoed code", resp.OTP)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short password", `{"username":"jane","password":"short","role":"general_user"}`},
		{"short username", `{"username":"jo","password":"hunter2hunter2","role":"general_user"}`},
		{"admin role rejected", `{"username":"jane","password":"hunter2hunter2","role":"admin"}`},
		{"missing role", `{"username":"jane","password":"hunter2hunter2"}`},
		{"bad email", `{"username":"jane","password":"hunter2hunter2","role":"general_user","email":"nope"}`},
	}
	h := NewAuthHandler(&stubAuthService{}, false)
	for _, tc := range cases {
		c, rec := newTestContext(http.MethodPost, "/auth/register", tc.body)
		if err := h.Register(c); err != nil {
			t.Fatalf("%s: Register returned error: %v", tc.name, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestRegister_DuplicateUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists}, false)
	c, rec := newTestContext(http.MethodPost, "/auth/register",
		`{"username":"jane","password":"hunter2hunter2","role":"general_user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestVerifyOTP_BadCodeLength(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, rec := newTestContext(http.MethodPost, "/auth/verify-otp",
		`{"user_id":"user_1","code":"123"}`)

	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyOTP_PropagatesServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{verifyErr: domain.ErrInvalidOTP}, false)
	c, _ := newTestContext(http.MethodPost, "/auth/verify-otp",
		`{"user_id":"user_1","code":"000000"}`)

	// Sentinels bubble up to the central error handler for status mapping.
	if err := h.VerifyOTP(c); err != domain.ErrInvalidOTP {
		t.Errorf("err = %v, want ErrInvalidOTP", err)
	}
}

func TestLogin_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginToken: "signed.jwt.token",
		loginUser:  &domain.User{ID: "user_1", Username: "jane", Role: domain.RoleGeneralUser},
	}, false)
	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"username":"jane","password":"hunter2hunter2"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("token = %q", resp.Token)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)
	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"username":"jane"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
