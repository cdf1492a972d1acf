package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockResultSink is a mock implementation of port.ResultSink.
type MockResultSink struct {
	mock.Mock
}

func (m *MockResultSink) Write(ctx context.Context, documentPath string, extraction *domain.ExtractionResult, validation *domain.ValidationResult) error {
	args := m.Called(ctx, documentPath, extraction, validation)
	return args.Error(0)
}
