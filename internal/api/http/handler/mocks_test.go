package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/passworld/internal/model"
)

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) ListCredentials(ctx context.Context) ([]model.Credential, error) {
	args := m.Called(ctx)
	credentials, _ := args.Get(0).([]model.Credential)
	return credentials, args.Error(1)
}

func (m *MockCredentialService) CreateCredential(ctx context.Context, params model.CreateCredentialParams) (model.Credential, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockCredentialService) UpdateCredential(ctx context.Context, params model.UpdateCredentialParams) (model.Credential, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Credential), args.Error(1)
}

func (m *MockCredentialService) DeleteCredential(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context, pin string) (model.Session, error) {
	args := m.Called(ctx, pin)
	return args.Get(0).(model.Session), args.Error(1)
}

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) Backup(ctx context.Context) (model.BackupResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.BackupResult), args.Error(1)
}

func (m *MockBackupService) Restore(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
