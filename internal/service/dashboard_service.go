package service

import (
	"context"
	"fmt"
	"io"

	"docflow/internal/domain"
	"docflow/internal/export"
	"docflow/internal/port"
)

// ExportFormat selects the encoding of an extraction export.
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// DashboardService serves stored extraction results and accuracy statistics.
type DashboardService interface {
	ListExtractions(ctx context.Context, offset, limit int) ([]domain.ExtractionRecord, int, error)
	DocumentExtractions(ctx context.Context, documentID string) ([]domain.ExtractionRecord, error)
	DocumentStats(ctx context.Context, filter port.DocumentStatsFilter) ([]domain.DocumentStats, error)
	FieldStats(ctx context.Context) ([]domain.FieldStats, error)
	Summary(ctx context.Context) (*domain.ExtractionSummary, error)
	Export(ctx context.Context, format ExportFormat, w io.Writer) error
}

type dashboardService struct {
	extractions port.ExtractionRepository
	stats       port.StatsRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(extractions port.ExtractionRepository, stats port.StatsRepository) DashboardService {
	return &dashboardService{extractions: extractions, stats: stats}
}

func (s *dashboardService) ListExtractions(ctx context.Context, offset, limit int) ([]domain.ExtractionRecord, int, error) {
	return s.extractions.List(ctx, offset, limit)
}

func (s *dashboardService) DocumentExtractions(ctx context.Context, documentID string) ([]domain.ExtractionRecord, error) {
	return s.extractions.ListByDocument(ctx, documentID)
}

func (s *dashboardService) DocumentStats(ctx context.Context, filter port.DocumentStatsFilter) ([]domain.DocumentStats, error) {
	return s.stats.DocumentStats(ctx, filter)
}

func (s *dashboardService) FieldStats(ctx context.Context) ([]domain.FieldStats, error) {
	return s.stats.FieldStats(ctx)
}

func (s *dashboardService) Summary(ctx context.Context) (*domain.ExtractionSummary, error) {
	return s.stats.Summary(ctx)
}

func (s *dashboardService) Export(ctx context.Context, format ExportFormat, w io.Writer) error {
	records, err := s.extractions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading extractions for export: %w", err)
	}

	switch format {
	case ExportCSV:
		if _, err := w.Write(export.BOM); err != nil {
			return err
		}
		cw := export.NewCSVWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteRecords(records); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case ExportXLSX, "":
		return export.WriteXLSX(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
