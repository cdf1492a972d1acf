package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) DocumentStats(ctx context.Context, filter port.DocumentStatsFilter) ([]domain.DocumentStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentStats), args.Error(1)
}

func (m *MockStatsRepo) FieldStats(ctx context.Context) ([]domain.FieldStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldStats), args.Error(1)
}

func (m *MockStatsRepo) Summary(ctx context.Context) (*domain.ExtractionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionSummary), args.Error(1)
}
