package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/noah-isme/edusight/internal/dto"
	appErrors "github.com/noah-isme/edusight/pkg/errors"
)

// Login verifies credentials against the backend and returns the
// authenticated identity.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.User, error) {
	payload := dto.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := c.validate.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeValidation, 0, "invalid login payload")
	}

	var user dto.User
	if err := c.doJSON(ctx, "auth_login", http.MethodPost, "/api/auth/login", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LoginWithCode authenticates a student by access code and claimed student
// identifier. The code is normalized to uppercase before transmission; the
// backend alone decides whether the pairing is valid and unexpired.
func (c *Client) LoginWithCode(ctx context.Context, accessCode, studentID string) (*dto.User, error) {
	payload := dto.CodeLoginRequest{
		AccessCode: NormalizeCode(accessCode),
		StudentID:  strings.TrimSpace(studentID),
	}
	if err := c.validate.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeValidation, 0, "invalid access code payload")
	}

	var user dto.User
	if err := c.doJSON(ctx, "auth_login_code", http.MethodPost, "/api/auth/login-code", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// NormalizeCode applies the client-side canonical form for access codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
