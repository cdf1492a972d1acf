package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockSettingsStore is a mock implementation of port.SettingsStore.
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Load(ctx context.Context) (*domain.ProcessingConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingConfig), args.Error(1)
}

func (m *MockSettingsStore) Save(ctx context.Context, cfg *domain.ProcessingConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
