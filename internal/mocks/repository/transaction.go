package repository

import (
	"context"

	domainrepo "github.com/MagGomedMY/stark-backend/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a testify mock for repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock with cleanup-time expectation checks.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory domainrepo.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

var _ domainrepo.TransactionManager = (*MockTransactionManager)(nil)

// MockRepositoryFactory is a testify mock for repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock with cleanup-time expectation checks.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) AccountRepo() domainrepo.AccountRepository {
	args := m.Called()

	return args.Get(0).(domainrepo.AccountRepository)
}

var _ domainrepo.RepositoryFactory = (*MockRepositoryFactory)(nil)

// PassthroughTransactionManager is a test double whose Execute simply invokes
// the callback with a fixed factory, without any real transaction.
type PassthroughTransactionManager struct {
	Factory domainrepo.RepositoryFactory
}

func (p *PassthroughTransactionManager) Execute(_ context.Context, fn func(txRepoFactory domainrepo.RepositoryFactory) error) error {
	return fn(p.Factory)
}

var _ domainrepo.TransactionManager = (*PassthroughTransactionManager)(nil)

// StaticRepositoryFactory always hands out the same repository instance.
type StaticRepositoryFactory struct {
	Repo domainrepo.AccountRepository
}

func (f *StaticRepositoryFactory) AccountRepo() domainrepo.AccountRepository {
	return f.Repo
}

var _ domainrepo.RepositoryFactory = (*StaticRepositoryFactory)(nil)
