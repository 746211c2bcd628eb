package backend

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"cinequiz/internal/domain"
)

var validate = validator.New()

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup form payload.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// PasswordReset carries the emailed reset token and the new password.
type PasswordReset struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// Login authenticates and stores the resulting session. Rejected credentials
// come back as an *APIError for inline display, never a forced logout.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	if err := validate.Struct(creds); err != nil {
		return LoginResponse{}, err
	}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return LoginResponse{}, err
	}
	if err := c.session.Login(out.User, out.AccessToken); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Register creates an account. The backend does not log the user in.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if err := validate.Struct(reg); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/users/register", reg, nil)
}

// ForgotPassword requests a reset email for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email" validate:"required,email"`
	}{Email: email}
	if err := validate.Struct(payload); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", payload, nil)
}

// ResetPassword consumes a reset token.
func (c *Client) ResetPassword(ctx context.Context, reset PasswordReset) error {
	if err := validate.Struct(reset); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", reset, nil)
}
