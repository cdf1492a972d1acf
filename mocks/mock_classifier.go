package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockClassifier is a mock implementation of port.Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, path, digitizedID, classifierID string, prompts domain.Prompts, validate bool) (string, error) {
	args := m.Called(ctx, path, digitizedID, classifierID, prompts, validate)
	return args.String(0), args.Error(1)
}
