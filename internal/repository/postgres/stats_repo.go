package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) DocumentStats(ctx context.Context, filter port.DocumentStatsFilter) ([]domain.DocumentStats, error) {
	query, args := buildDocumentStatsQuery(filter)
	var stats []domain.DocumentStats
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("statsRepo.DocumentStats: %w", err)
	}
	return stats, nil
}

// buildDocumentStatsQuery applies case-insensitive substring filters.
func buildDocumentStatsQuery(filter port.DocumentStatsFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Filename != "" {
		args = append(args, "%"+filter.Filename+"%")
		where = append(where, fmt.Sprintf("filename ILIKE $%d", len(args)))
	}
	if filter.DocumentID != "" {
		args = append(args, "%"+filter.DocumentID+"%")
		where = append(where, fmt.Sprintf("document_id ILIKE $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT
	document_id,
	filename,
	COALESCE(AVG(confidence), 0) AS avg_field_accuracy,
	COALESCE(AVG(ocr_confidence), 0) AS avg_ocr_accuracy
FROM extraction`)
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString("\nGROUP BY document_id, filename\nORDER BY filename")
	return b.String(), args
}

// Table rows are reported under their own field ids; the "items" parent
// carries no value of its own.
const fieldStatsQuery = `SELECT
	field_id,
	field,
	COALESCE(AVG(confidence), 0) AS avg_field_accuracy,
	COALESCE(AVG(ocr_confidence), 0) AS avg_document_ocr_confidence
FROM extraction
WHERE field <> 'items'
GROUP BY field_id, field
ORDER BY field`

func (r *statsRepo) FieldStats(ctx context.Context) ([]domain.FieldStats, error) {
	var stats []domain.FieldStats
	if err := r.db.SelectContext(ctx, &stats, fieldStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.FieldStats: %w", err)
	}
	return stats, nil
}

const summaryQuery = `SELECT
	COUNT(DISTINCT document_id) AS total_documents,
	COUNT(*) AS total_fields,
	COUNT(CASE WHEN is_correct THEN 1 END) AS correct_fields
FROM extraction`

func (r *statsRepo) Summary(ctx context.Context) (*domain.ExtractionSummary, error) {
	var summary domain.ExtractionSummary
	if err := r.db.GetContext(ctx, &summary, summaryQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.Summary: %w", err)
	}
	return &summary, nil
}
