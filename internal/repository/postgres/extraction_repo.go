package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type extractionRepo struct {
	db *sqlx.DB
}

// ExtractionRepo persists pipeline output as extraction rows and reads them
// back for the dashboard.
type ExtractionRepo interface {
	port.ResultSink
	port.ExtractionRepository
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepo.
func NewExtractionRepo(db *sqlx.DB) ExtractionRepo {
	return &extractionRepo{db: db}
}

const upsertExtractionQuery = `
	INSERT INTO extraction (
		filename, document_id, document_type_id, field_id, field, is_missing,
		field_value, field_unformatted_value, validated_field_value, is_correct,
		confidence, ocr_confidence, operator_confirmed, row_index, column_index, timestamp
	) VALUES (
		:filename, :document_id, :document_type_id, :field_id, :field, :is_missing,
		:field_value, :field_unformatted_value, :validated_field_value, :is_correct,
		:confidence, :ocr_confidence, :operator_confirmed, :row_index, :column_index, NOW()
	)
	ON CONFLICT (filename, field_id, field, row_index, column_index) DO UPDATE SET
		document_id = EXCLUDED.document_id,
		document_type_id = EXCLUDED.document_type_id,
		is_missing = EXCLUDED.is_missing,
		field_value = EXCLUDED.field_value,
		field_unformatted_value = EXCLUDED.field_unformatted_value,
		validated_field_value = EXCLUDED.validated_field_value,
		is_correct = EXCLUDED.is_correct,
		confidence = EXCLUDED.confidence,
		ocr_confidence = EXCLUDED.ocr_confidence,
		operator_confirmed = EXCLUDED.operator_confirmed,
		timestamp = NOW()`

const deleteExtractionQuery = `DELETE FROM extraction WHERE filename = $1`

// Write replaces the stored rows of a document with one row per extracted
// field, in a single transaction. When a validation result is given, its
// values are merged into the same rows. Every write carries the full
// extraction, so rows from an earlier run never survive a later one.
func (r *extractionRepo) Write(ctx context.Context, documentPath string, extraction *domain.ExtractionResult, validation *domain.ValidationResult) error {
	if extraction == nil {
		return fmt.Errorf("extractionRepo.Write: nil extraction result for %s", documentPath)
	}
	filename := path.Base(documentPath)
	records := BuildExtractionRecords(documentPath, extraction, validation)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("extractionRepo.Write begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := replaceDocumentRows(ctx, tx, filename, records); err != nil {
		return fmt.Errorf("extractionRepo.Write: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("extractionRepo.Write commit: %w", err)
	}
	if len(records) == 0 {
		log.Debug().Str("path", documentPath).Msg("extractionRepo.Write: no fields to store")
	}
	return nil
}

// rowExecer is the subset of *sqlx.Tx used to replace a document's rows.
type rowExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

func replaceDocumentRows(ctx context.Context, tx rowExecer, filename string, records []domain.ExtractionRecord) error {
	if _, err := tx.ExecContext(ctx, deleteExtractionQuery, filename); err != nil {
		return fmt.Errorf("deleting previous rows of %s: %w", filename, err)
	}
	for i := range records {
		if _, err := tx.NamedExecContext(ctx, upsertExtractionQuery, &records[i]); err != nil {
			return fmt.Errorf("field %s: %w", records[i].FieldID, err)
		}
	}
	return nil
}

// BuildExtractionRecords flattens an extraction, and optionally its
// validation, into rows keyed by field id, field name and table cell.
func BuildExtractionRecords(documentPath string, extraction *domain.ExtractionResult, validation *domain.ValidationResult) []domain.ExtractionRecord {
	filename := path.Base(documentPath)
	documentID := domain.DocumentIDFromFilename(filename)

	validated := make(map[fieldKey]domain.ExtractedField)
	if validation != nil {
		for _, f := range validation.Fields {
			validated[keyOf(f)] = f
		}
	}

	records := make([]domain.ExtractionRecord, 0, len(extraction.Fields))
	for _, f := range extraction.Fields {
		confirmed := f.OperatorConfirmed
		rec := domain.ExtractionRecord{
			Filename:              filename,
			DocumentID:            documentID,
			DocumentTypeID:        extraction.DocumentTypeID,
			FieldID:               f.FieldID,
			Field:                 f.FieldName,
			IsMissing:             f.IsMissing,
			FieldValue:            optional(f.Value, f.IsMissing),
			FieldUnformattedValue: optional(f.UnformattedValue, f.IsMissing),
			Confidence:            f.Confidence,
			OCRConfidence:         f.OCRConfidence,
			OperatorConfirmed:     &confirmed,
			RowIndex:              f.RowIndex,
			ColumnIndex:           f.ColumnIndex,
		}
		if v, ok := validated[keyOf(f)]; ok {
			value := v.Value
			rec.ValidatedFieldValue = &value
			rec.IsCorrect = strings.TrimSpace(value) == strings.TrimSpace(f.Value)
			vConfirmed := v.OperatorConfirmed
			rec.OperatorConfirmed = &vConfirmed
		}
		records = append(records, rec)
	}
	return records
}

type fieldKey struct {
	id     string
	name   string
	row    int
	column int
}

func keyOf(f domain.ExtractedField) fieldKey {
	return fieldKey{id: f.FieldID, name: f.FieldName, row: f.RowIndex, column: f.ColumnIndex}
}

func optional(s string, missing bool) *string {
	if missing {
		return nil
	}
	return &s
}

func (r *extractionRepo) List(ctx context.Context, offset, limit int) ([]domain.ExtractionRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM extraction"); err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List count: %w", err)
	}

	var records []domain.ExtractionRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM extraction ORDER BY filename, field_id, row_index, column_index LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *extractionRepo) ListByDocument(ctx context.Context, documentID string) ([]domain.ExtractionRecord, error) {
	var records []domain.ExtractionRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM extraction WHERE document_id = $1 ORDER BY field_id, row_index, column_index`,
		documentID)
	if err != nil {
		return nil, fmt.Errorf("extractionRepo.ListByDocument: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return records, nil
}

func (r *extractionRepo) ListAll(ctx context.Context) ([]domain.ExtractionRecord, error) {
	var records []domain.ExtractionRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM extraction ORDER BY filename, field_id, row_index, column_index`)
	if err != nil {
		return nil, fmt.Errorf("extractionRepo.ListAll: %w", err)
	}
	return records, nil
}
