package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MagGomedMY/stark-backend/internal/domain/entity"
	domainerrors "github.com/MagGomedMY/stark-backend/internal/domain/errors"
	"github.com/MagGomedMY/stark-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "tony",
		Email:    "tony@stark.io",
		Password: "ironman1",
	}

	accountID := uuid.New()

	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "tony@stark.io").Return(false, nil)
	fx.hasher.On("Hash", "ironman1").Return("hashed_password", nil)
	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			account.ID = accountID
			account.CreatedAt = time.Now()
		}).
		Return(nil)
	fx.tokenService.On("Issue", accountID, "tony").Return("signed.token.value", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.token.value", output.Token)
	assert.Equal(t, accountID, output.Account.ID)
	assert.Equal(t, "tony", output.Account.Username)
	assert.Equal(t, "tony@stark.io", output.Account.Email)
}

func TestAccountService_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{"nil input", nil},
		{"missing username", &usecase.RegisterInput{Email: "a@b.io", Password: "secret1"}},
		{"missing email", &usecase.RegisterInput{Username: "tony", Password: "secret1"}},
		{"missing password", &usecase.RegisterInput{Username: "tony", Email: "a@b.io"}},
		{"short password", &usecase.RegisterInput{Username: "tony", Email: "a@b.io", Password: "12345"}},
		{"username too long", &usecase.RegisterInput{Username: strings.Repeat("x", 51), Email: "a@b.io", Password: "secret1"}},
		{"email too long", &usecase.RegisterInput{Username: "tony", Email: strings.Repeat("x", 96) + "@b.io", Password: "secret1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No expectations are set on any mock: a validation failure must
			// never reach the store, the hasher or the token service.
			fx := createTestAccountService(t)

			output, err := fx.service.Register(context.Background(), tc.input)

			assert.Nil(t, output)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestAccountService_Register_ConflictFromPreCheck(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "tony",
		Email:    "other@x.io",
		Password: "whatever1",
	}

	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "other@x.io").Return(true, nil)

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
	// The password must not be hashed for a rejected registration.
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_Register_ConflictFromInsertRace(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "tony",
		Email:    "tony@stark.io",
		Password: "ironman1",
	}

	// The pre-check passes but a concurrent registration wins the insert; the
	// constraint violation must classify as a conflict, not a server error.
	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "tony@stark.io").Return(false, nil)
	fx.hasher.On("Hash", "ironman1").Return("hashed_password", nil)
	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Return(domainerrors.ErrAccountAlreadyExists.WrapMessage("username or email already registered"))

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAccountService_Register_StorageErrorIsNotMasked(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "tony",
		Email:    "tony@stark.io",
		Password: "ironman1",
	}

	storageErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to count accounts")
	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "tony@stark.io").Return(false, storageErr)

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.False(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAccountService_Register_TokenIssueFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "tony",
		Email:    "tony@stark.io",
		Password: "ironman1",
	}

	accountID := uuid.New()

	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "tony@stark.io").Return(false, nil)
	fx.hasher.On("Hash", "ironman1").Return("hashed_password", nil)
	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Account).ID = accountID
		}).
		Return(nil)
	fx.tokenService.On("Issue", accountID, "tony").Return("", errors.New("signing failed"))

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue session token")
}

func TestAccountService_Register_TrimsWhitespace(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "  tony  ",
		Email:    " tony@stark.io ",
		Password: "ironman1",
	}

	fx.accountRepo.On("ExistsByUsernameOrEmail", ctx, "tony", "tony@stark.io").Return(false, nil)
	fx.hasher.On("Hash", "ironman1").Return("hashed_password", nil)
	fx.accountRepo.On("Create", ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(*entity.Account)
			assert.Equal(t, "tony", account.Username)
			account.ID = uuid.New()
		}).
		Return(nil)
	fx.tokenService.On("Issue", mock.AnythingOfType("uuid.UUID"), "tony").Return("token", nil)

	_, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
}
