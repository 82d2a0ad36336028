// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/MagGomedMY/stark-backend/internal/delivery/http/middleware"
	"github.com/MagGomedMY/stark-backend/internal/delivery/http/response"
	"github.com/MagGomedMY/stark-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Login handles the login request. The identifier field matches either a
// username or an email.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil || input == nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// VerifyToken reports whether a presented token is a valid session token.
// The outcome is always a 200; validity is carried in the body.
func (h *AccountHandler) VerifyToken(c echo.Context) error {
	var input *usecase.VerifySessionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token verification input")
	}

	token := ""
	if input != nil {
		token = input.Token
	}

	output := h.uc.VerifySession(c.Request().Context(), token)

	return response.Success(c, http.StatusOK, output, "Token verification completed")
}

// CheckUsername reports whether a username is still available.
func (h *AccountHandler) CheckUsername(c echo.Context) error {
	username := c.Param("username")

	available, err := h.uc.CheckUsernameAvailable(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"username":  username,
		"available": available,
	}, "Username availability checked")
}

// ListAccounts returns all registered accounts without credentials.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "Accounts retrieved successfully")
}

// Me returns the identity of the authenticated caller, as decoded from the
// bearer token by the auth middleware.
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}
	username, _ := c.Get(middleware.ContextKeyUsername).(string)

	return response.Success(c, http.StatusOK, map[string]string{
		"accountId": accountID.String(),
		"username":  username,
	}, "Identity retrieved successfully")
}
