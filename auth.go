package reshadx

import (
	"context"
	"time"

	"github.com/reshadx/reshadx-go/internal/api"
)

// User is a ReshADX user profile.
type User struct {
	UserID        string     `json:"userId"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	PhoneNumber   string     `json:"phoneNumber"`
	EmailVerified bool       `json:"emailVerified"`
	PhoneVerified bool       `json:"phoneVerified"`
	AccountTier   string     `json:"accountTier"`
	AccountStatus string     `json:"accountStatus"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// Tokens is a pair of session tokens.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// DeviceLocation is an optional geolocation attached to a device fingerprint.
type DeviceLocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// DeviceFingerprint identifies the device a request originates from.
type DeviceFingerprint struct {
	DeviceID  string          `json:"deviceId" validate:"required"`
	IPAddress string          `json:"ipAddress" validate:"required,ip"`
	UserAgent string          `json:"userAgent" validate:"required"`
	Location  *DeviceLocation `json:"location,omitempty"`
}

// RegisterParams are the inputs to AuthService.Register.
type RegisterParams struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// RegisterResponse is returned by AuthService.Register.
type RegisterResponse struct {
	UserID string `json:"userId"`
	Tokens Tokens `json:"tokens"`
}

// LoginParams are the inputs to AuthService.Login.
type LoginParams struct {
	Email             string             `json:"email" validate:"required,email"`
	Password          string             `json:"password" validate:"required"`
	DeviceFingerprint *DeviceFingerprint `json:"deviceFingerprint,omitempty"`
}

// LoginResponse is returned by AuthService.Login.
type LoginResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

// UpdateProfileParams holds profile changes. Empty fields are left unchanged.
type UpdateProfileParams struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AuthService handles registration, sessions and account security.
type AuthService struct{ service }

// Register creates a user and stores the returned access token on the client.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*RegisterResponse, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var resp RegisterResponse
	err := s.do(ctx, &api.Request{
		Method: "POST",
		Path:   "/auth/register",
		Body:   params,
		Hooks:  []api.SuccessHook{s.api.CaptureAccessToken(api.TokenAt("tokens", "accessToken"))},
	}, &resp, ResourceUnknown)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password and stores the returned access
// token on the client.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (*LoginResponse, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	var resp LoginResponse
	err := s.do(ctx, &api.Request{
		Method: "POST",
		Path:   "/auth/login",
		Body:   params,
		Hooks:  []api.SuccessHook{s.api.CaptureAccessToken(api.TokenAt("tokens", "accessToken"))},
	}, &resp, ResourceUnknown)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the local access token. No request is sent.
func (s *AuthService) Logout() {
	s.api.ClearAccessToken()
}

// CurrentUser returns the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := s.do(ctx, &api.Request{Method: "GET", Path: "/auth/me"}, &user, ResourceUnknown); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyEmail confirms an email address with the token sent to it.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (map[string]any, error) {
	if err := requireID("token", token); err != nil {
		return nil, err
	}
	return s.post(ctx, "/auth/verify-email", map[string]string{"token": token})
}

// RequestPasswordReset sends a password reset email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (map[string]any, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, &Error{Code: CodeValidation, Message: "email must be a valid email address", Field: "email", Err: err}
	}
	return s.post(ctx, "/auth/forgot-password", map[string]string{"email": email})
}

// ResetPassword sets a new password using a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (map[string]any, error) {
	if err := requireID("token", token); err != nil {
		return nil, err
	}
	if err := requireID("newPassword", newPassword); err != nil {
		return nil, err
	}
	return s.post(ctx, "/auth/reset-password", map[string]string{"token": token, "newPassword": newPassword})
}

// RefreshToken exchanges a refresh token for new session tokens. A returned
// access token replaces the one stored on the client.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*Tokens, error) {
	if err := requireID("refreshToken", refreshToken); err != nil {
		return nil, err
	}

	var tokens Tokens
	err := s.do(ctx, &api.Request{
		Method: "POST",
		Path:   "/auth/refresh-token",
		Body:   map[string]string{"refreshToken": refreshToken},
		Hooks:  []api.SuccessHook{s.api.CaptureAccessToken(api.TokenAt("accessToken"))},
	}, &tokens, ResourceUnknown)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// ChangePassword changes the password of the authenticated user.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (map[string]any, error) {
	if err := requireID("currentPassword", currentPassword); err != nil {
		return nil, err
	}
	if err := requireID("newPassword", newPassword); err != nil {
		return nil, err
	}
	return s.post(ctx, "/auth/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
}

// UpdateProfile updates the authenticated user's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	var user User
	err := s.do(ctx, &api.Request{Method: "PATCH", Path: "/auth/profile", Body: params}, &user, ResourceUnknown)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnableTwoFactor starts two-factor enrollment. The result carries the
// provisioning secret or QR code.
func (s *AuthService) EnableTwoFactor(ctx context.Context) (map[string]any, error) {
	return s.post(ctx, "/auth/2fa/enable", nil)
}

// VerifyTwoFactor completes two-factor enrollment with a one-time code.
func (s *AuthService) VerifyTwoFactor(ctx context.Context, code string) (map[string]any, error) {
	if err := requireID("code", code); err != nil {
		return nil, err
	}
	return s.post(ctx, "/auth/2fa/verify", map[string]string{"code": code})
}

// DisableTwoFactor turns two-factor authentication off.
func (s *AuthService) DisableTwoFactor(ctx context.Context, password string) (map[string]any, error) {
	if err := requireID("password", password); err != nil {
		return nil, err
	}
	return s.post(ctx, "/auth/2fa/disable", map[string]string{"password": password})
}
