package mocks

import (
	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockBatchSubmitter is a mock implementation of service.BatchSubmitter.
type MockBatchSubmitter struct {
	mock.Mock
}

func (m *MockBatchSubmitter) SubmitBatch(docs []domain.Document, cfg *domain.ProcessingConfig) ([]string, error) {
	args := m.Called(docs, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
