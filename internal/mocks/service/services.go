// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	domainservice "github.com/MagGomedMY/stark-backend/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock with cleanup-time expectation checks.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

var _ domainservice.PasswordHasher = (*MockPasswordHasher)(nil)

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock with cleanup-time expectation checks.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(accountID uuid.UUID, username string) (string, error) {
	args := m.Called(accountID, username)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(tokenString string) domainservice.Verification {
	args := m.Called(tokenString)

	return args.Get(0).(domainservice.Verification)
}

func (m *MockTokenService) TTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

var _ domainservice.TokenService = (*MockTokenService)(nil)
