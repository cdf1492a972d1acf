package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
)

// MockDiscovery is a mock implementation of port.Discovery.
type MockDiscovery struct {
	mock.Mock
}

func (m *MockDiscovery) ListProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockDiscovery) ListClassifiers(ctx context.Context, projectID string) ([]domain.ClassifierInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassifierInfo), args.Error(1)
}

func (m *MockDiscovery) ListExtractors(ctx context.Context, projectID string) ([]domain.ExtractorInfo, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractorInfo), args.Error(1)
}
