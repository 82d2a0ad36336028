package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MagGomedMY/stark-backend/internal/delivery/http/validator"
	domainerrors "github.com/MagGomedMY/stark-backend/internal/domain/errors"
	"github.com/MagGomedMY/stark-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccountUsecase returns canned results for handler tests.
type stubAccountUsecase struct {
	registerOutput *usecase.AuthOutput
	registerErr    error
	loginOutput    *usecase.AuthOutput
	loginErr       error
	sessionOutput  *usecase.SessionOutput
	available      bool
	availableErr   error
	accounts       []*usecase.AccountInfo
	listErr        error
}

func (s *stubAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return s.registerOutput, s.registerErr
}

func (s *stubAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginOutput, s.loginErr
}

func (s *stubAccountUsecase) VerifySession(ctx context.Context, token string) *usecase.SessionOutput {
	return s.sessionOutput
}

func (s *stubAccountUsecase) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return s.available, s.availableErr
}

func (s *stubAccountUsecase) ListAccounts(ctx context.Context) ([]*usecase.AccountInfo, error) {
	return s.accounts, s.listErr
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newStubHandler(stub *stubAccountUsecase) *AccountHandler {
	return NewAccountHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAccountHandler_Register_Success(t *testing.T) {
	accountID := uuid.New()
	handler := newStubHandler(&stubAccountUsecase{
		registerOutput: &usecase.AuthOutput{
			Token: "signed.jwt.token",
			Account: &usecase.AccountInfo{
				ID:        accountID,
				Username:  "tony",
				Email:     "tony@stark.io",
				CreatedAt: time.Now(),
			},
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"tony","email":"tony@stark.io","password":"ironman1"}`)

	err := handler.Register(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "signed.jwt.token")
	assert.Contains(t, body, accountID.String())
	assert.NotContains(t, body, "passwordHash")
}

func TestAccountHandler_Register_MalformedBody(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register", `{"username": not-json`)

	err := handler.Register(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAccountHandler_Register_ConflictPropagates(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{
		registerErr: domainerrors.ErrAccountAlreadyExists,
	})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"tony","email":"tony@stark.io","password":"ironman1"}`)

	// The handler does not translate business errors itself; it hands them to
	// the error handler.
	err := handler.Register(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
}

func TestAccountHandler_Login_Success(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{
		loginOutput: &usecase.AuthOutput{
			Token:   "signed.jwt.token",
			Account: &usecase.AccountInfo{ID: uuid.New(), Username: "tony"},
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"identifier":"tony","password":"ironman1"}`)

	err := handler.Login(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed.jwt.token")
}

func TestAccountHandler_VerifyToken_InvalidTokenStillOK(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{
		sessionOutput: &usecase.SessionOutput{Valid: false, Reason: "token expired"},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/verify-token",
		`{"token":"some.expired.token"}`)

	err := handler.VerifyToken(c)
	require.NoError(t, err)

	// Verification outcome is data, not an error status.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":false`)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAccountHandler_CheckUsername(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{available: true})

	c, rec := newTestContext(t, http.MethodGet, "/auth/check-username/tony", "")
	c.SetParamNames("username")
	c.SetParamValues("tony")

	err := handler.CheckUsername(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)
	assert.Contains(t, rec.Body.String(), `"username":"tony"`)
}

func TestAccountHandler_ListAccounts(t *testing.T) {
	handler := newStubHandler(&stubAccountUsecase{
		accounts: []*usecase.AccountInfo{
			{ID: uuid.New(), Username: "tony", Email: "tony@stark.io"},
			{ID: uuid.New(), Username: "pepper", Email: "pepper@stark.io"},
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/accounts", "")

	err := handler.ListAccounts(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "tony")
	assert.Contains(t, body, "pepper")
	assert.NotContains(t, body, "passwordHash")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	err := HealthCheck(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
