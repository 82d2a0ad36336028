// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "github.com/MagGomedMY/stark-backend/internal/delivery/context"
	"github.com/MagGomedMY/stark-backend/internal/domain/entity"
	domainerrors "github.com/MagGomedMY/stark-backend/internal/domain/errors"
	"github.com/MagGomedMY/stark-backend/internal/domain/repository"
	"github.com/MagGomedMY/stark-backend/internal/domain/service"
	"github.com/MagGomedMY/stark-backend/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxUsernameLength = 50
	maxEmailLength    = 100
	minPasswordLength = 6
)

// accountService implements the AccountUsecase interface. It orchestrates the
// credential store, password hasher and token service; it holds no mutable
// state of its own, so a single instance is safe under concurrent requests.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: validate,
// uniqueness pre-check, hash, insert, issue token.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := validateRegisterInput(input); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	// Fast-path uniqueness check. The unique constraints on the accounts
	// table remain the authoritative guard; a concurrent registration can
	// still race past this check and is caught at insert time.
	exists, err := srv.accountRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		srv.log(ctx).Error("Failed uniqueness pre-check", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to check account uniqueness")
	}
	if exists {
		return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("username or email already registered")
	}

	// Hash outside the transaction: bcrypt is deliberately CPU-bound and must
	// not hold a database transaction open.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, newAccount)
	}); err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("username", input.Username), slog.Any("error", err))

		// The repository already classified a constraint race as a conflict;
		// pass it through unmasked.
		return nil, err
	}

	token, err := srv.tokenService.Issue(newAccount.ID, newAccount.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("accountID", newAccount.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return &usecase.AuthOutput{
		Token:   token,
		Account: toAccountInfo(newAccount),
	}, nil
}

// Login authenticates an account by identifier (username or email) and
// password. An unknown identifier and a wrong password produce identical
// results so callers cannot tell which field was wrong.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil || input.Identifier == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("identifier and password are required")
	}

	srv.log(ctx).Debug("Starting login", slog.String("identifier", input.Identifier))

	account, err := srv.accountRepo.FindByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by identifier")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(account.ID, account.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{
		Token:   token,
		Account: toAccountInfo(account),
	}, nil
}

// VerifySession delegates to the token service. Validity is purely a function
// of signature and expiry; the decoded payload is returned as the caller's
// established identity without a store round-trip.
func (srv *accountService) VerifySession(ctx context.Context, token string) *usecase.SessionOutput {
	if token == "" {
		return &usecase.SessionOutput{Valid: false, Reason: "missing token"}
	}

	result := srv.tokenService.Verify(token)
	if !result.Valid {
		srv.log(ctx).Debug("Session verification failed", slog.String("reason", result.Reason))

		return &usecase.SessionOutput{Valid: false, Reason: result.Reason}
	}

	return &usecase.SessionOutput{
		Valid:     true,
		AccountID: result.Claims.AccountID,
		Username:  result.Claims.Username,
		IssuedAt:  result.Claims.IssuedAt,
	}
}

// CheckUsernameAvailable reports whether a username is still free.
func (srv *accountService) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	if username == "" || len(username) > maxUsernameLength {
		return false, domainerrors.ErrValidationFailed.WrapMessage("username must be 1 to 50 characters")
	}

	exists, err := srv.accountRepo.ExistsByUsernameOrEmail(ctx, username, "")
	if err != nil {
		return false, errors.Wrap(err, "failed to check username availability")
	}

	return !exists, nil
}

// ListAccounts returns all accounts without secrets.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*usecase.AccountInfo, error) {
	accounts, err := srv.accountRepo.ListAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}

	infos := make([]*usecase.AccountInfo, 0, len(accounts))
	for _, account := range accounts {
		infos = append(infos, toAccountInfo(account))
	}

	return infos, nil
}

func validateRegisterInput(input *usecase.RegisterInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WrapMessage("missing registration input")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	switch {
	case username == "" || len(username) > maxUsernameLength:
		return domainerrors.ErrValidationFailed.WrapMessage("username must be 1 to 50 characters")
	case email == "" || len(email) > maxEmailLength:
		return domainerrors.ErrValidationFailed.WrapMessage("email must be 1 to 100 characters")
	case len(input.Password) < minPasswordLength:
		return domainerrors.ErrValidationFailed.WrapMessage("password must be at least 6 characters")
	}

	input.Username = username
	input.Email = email

	return nil
}

func toAccountInfo(account *entity.Account) *usecase.AccountInfo {
	if account == nil {
		return nil
	}

	return &usecase.AccountInfo{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}
