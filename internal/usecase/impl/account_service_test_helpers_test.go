package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/MagGomedMY/stark-backend/internal/domain/entity"
	domainerrors "github.com/MagGomedMY/stark-backend/internal/domain/errors"
	"github.com/MagGomedMY/stark-backend/internal/domain/repository"
	mockRepo "github.com/MagGomedMY/stark-backend/internal/mocks/repository"
	mockSvc "github.com/MagGomedMY/stark-backend/internal/mocks/service"
	"github.com/MagGomedMY/stark-backend/internal/usecase"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewAccountService(AccountServiceParams{
		TxManager: &mockRepo.PassthroughTransactionManager{
			Factory: &mockRepo.StaticRepositoryFactory{Repo: accountRepo},
		},
		AccountRepo:  accountRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:      service,
		accountRepo:  accountRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// memoryAccountStore is an in-memory AccountRepository with the same
// uniqueness guarantee a database constraint provides. It backs the
// concurrency and round-trip tests where mock choreography would obscure the
// behavior under test.
type memoryAccountStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*entity.Account
	username map[string]uuid.UUID
	email    map[string]uuid.UUID
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{
		byID:     make(map[uuid.UUID]*entity.Account),
		username: make(map[string]uuid.UUID),
		email:    make(map[string]uuid.UUID),
	}
}

func (s *memoryAccountStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (s *memoryAccountStore) FindByIdentifier(_ context.Context, identifier string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.username[identifier]; ok {
		copied := *s.byID[id]

		return &copied, nil
	}
	if id, ok := s.email[identifier]; ok {
		copied := *s.byID[id]

		return &copied, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (s *memoryAccountStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, usernameTaken := s.username[username]
	_, emailTaken := s.email[email]

	return usernameTaken || emailTaken, nil
}

func (s *memoryAccountStore) Create(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Insert-if-absent under one lock, matching the atomicity of a database
	// uniqueness constraint.
	if _, taken := s.username[account.Username]; taken {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("username or email already registered")
	}
	if _, taken := s.email[account.Email]; taken {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("username or email already registered")
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()

	copied := *account
	s.byID[account.ID] = &copied
	s.username[account.Username] = account.ID
	s.email[account.Email] = account.ID

	return nil
}

func (s *memoryAccountStore) ListAll(_ context.Context) ([]*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*entity.Account, 0, len(s.byID))
	for _, account := range s.byID {
		// Mirror the SQL implementation: the hash column is never selected.
		accounts = append(accounts, &entity.Account{
			ID:        account.ID,
			Username:  account.Username,
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		})
	}

	return accounts, nil
}

var _ repository.AccountRepository = (*memoryAccountStore)(nil)
