package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// MockProcessService is a mock implementation of service.ProcessService.
type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) Upload(ctx context.Context, input service.FileUploadInput) (*domain.FileInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileInfo), args.Error(1)
}

func (m *MockProcessService) ListFiles(ctx context.Context) ([]domain.FileInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileInfo), args.Error(1)
}

func (m *MockProcessService) ProcessBatch(ctx context.Context, filenames []string) ([]string, error) {
	args := m.Called(ctx, filenames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProcessService) Status() domain.StatusMessage {
	args := m.Called()
	return args.Get(0).(domain.StatusMessage)
}
