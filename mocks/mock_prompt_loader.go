package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockPromptLoader is a mock implementation of port.PromptLoader.
type MockPromptLoader struct {
	mock.Mock
}

func (m *MockPromptLoader) Load(ctx context.Context, name string) (domain.Prompts, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Prompts), args.Error(1)
}
