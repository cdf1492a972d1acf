package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockValidator is a mock implementation of port.Validator.
type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, extractorID, digitizedID string, result *domain.ExtractionResult, prompts domain.Prompts) (*domain.ValidationResult, error) {
	args := m.Called(ctx, extractorID, digitizedID, result, prompts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationResult), args.Error(1)
}
