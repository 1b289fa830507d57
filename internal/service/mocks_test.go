package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/passworld/internal/model"
)

// MockCredentialStore mocks the CredentialStore interface
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) List(ctx context.Context) ([]model.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialStore) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	args := m.Called(ctx, credential)
	if fn, ok := args.Get(0).(func(context.Context, model.Credential) model.Credential); ok {
		return fn(ctx, credential), args.Error(1)
	}
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockCredentialStore) Update(ctx context.Context, credential model.Credential) (model.Credential, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockCredentialStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCredentialStore) Restore(ctx context.Context, credentials []model.Credential) (int, error) {
	args := m.Called(ctx, credentials)
	return args.Int(0), args.Error(1)
}

func (m *MockCredentialStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCredentialStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateSessionToken() (string, time.Time, error) {
	args := m.Called()
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenManager) ParseSessionToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
