package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockDiscoveryService is a mock implementation of service.DiscoveryService.
type MockDiscoveryService struct {
	mock.Mock
}

func (m *MockDiscoveryService) Projects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockDiscoveryService) Classifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassifierInfo), args.Error(1)
}

func (m *MockDiscoveryService) Extractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractorInfo), args.Error(1)
}
