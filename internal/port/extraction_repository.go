package port

import (
	"context"

	"docflow/internal/domain"
)

// ExtractionRepository reads persisted extraction records.
type ExtractionRepository interface {
	List(ctx context.Context, offset, limit int) ([]domain.ExtractionRecord, int, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.ExtractionRecord, error)
	ListAll(ctx context.Context) ([]domain.ExtractionRecord, error)
}

// DocumentStatsFilter narrows per-document statistics. Empty fields match everything.
type DocumentStatsFilter struct {
	Filename   string
	DocumentID string
}

// StatsRepository provides aggregate accuracy queries over extraction records.
type StatsRepository interface {
	DocumentStats(ctx context.Context, filter DocumentStatsFilter) ([]domain.DocumentStats, error)
	FieldStats(ctx context.Context) ([]domain.FieldStats, error)
	Summary(ctx context.Context) (*domain.ExtractionSummary, error)
}
