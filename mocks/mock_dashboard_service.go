package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docflow/internal/domain"
	"docflow/internal/port"
	"docflow/internal/service"
)

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) ListExtractions(ctx context.Context, offset, limit int) ([]domain.ExtractionRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExtractionRecord), args.Int(1), args.Error(2)
}

func (m *MockDashboardService) DocumentExtractions(ctx context.Context, documentID string) ([]domain.ExtractionRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractionRecord), args.Error(1)
}

func (m *MockDashboardService) DocumentStats(ctx context.Context, filter port.DocumentStatsFilter) ([]domain.DocumentStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentStats), args.Error(1)
}

func (m *MockDashboardService) FieldStats(ctx context.Context) ([]domain.FieldStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldStats), args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context) (*domain.ExtractionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionSummary), args.Error(1)
}

func (m *MockDashboardService) Export(ctx context.Context, format service.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
