package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
)

type execCall struct {
	query string
	arg   interface{}
}

type recordingExecer struct {
	calls     []execCall
	failQuery string
}

func (e *recordingExecer) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	var arg interface{}
	if len(args) > 0 {
		arg = args[0]
	}
	return e.record(query, arg)
}

func (e *recordingExecer) NamedExecContext(_ context.Context, query string, arg interface{}) (sql.Result, error) {
	return e.record(query, arg)
}

func (e *recordingExecer) record(query string, arg interface{}) (sql.Result, error) {
	if query == e.failQuery {
		return nil, errors.New("connection reset")
	}
	e.calls = append(e.calls, execCall{query: query, arg: arg})
	return driver.RowsAffected(1), nil
}

func tableExtraction(rows int) *domain.ExtractionResult {
	result := &domain.ExtractionResult{DocumentTypeID: "invoices"}
	for i := 0; i < rows; i++ {
		result.Fields = append(result.Fields, domain.ExtractedField{
			FieldID: "items.qty", FieldName: "Quantity", Value: "1", RowIndex: i, ColumnIndex: 0,
		})
	}
	return result
}

func TestReplaceDocumentRows_DeletesBeforeInserting(t *testing.T) {
	tests := []struct {
		name       string
		extraction *domain.ExtractionResult
		validation *domain.ValidationResult
		wantRows   int
	}{
		{"rerun with fewer table rows", tableExtraction(3), nil, 3},
		{"merged validation keeps every row", tableExtraction(5), &domain.ValidationResult{Fields: tableExtraction(2).Fields}, 5},
		{"no fields clears the document", &domain.ExtractionResult{}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecer{}
			records := BuildExtractionRecords("uploads/invoice-7.pdf", tt.extraction, tt.validation)

			err := replaceDocumentRows(context.Background(), exec, "invoice-7.pdf", records)

			require.NoError(t, err)
			require.Len(t, exec.calls, tt.wantRows+1)
			assert.Equal(t, deleteExtractionQuery, exec.calls[0].query)
			assert.Equal(t, "invoice-7.pdf", exec.calls[0].arg)
			for i, call := range exec.calls[1:] {
				assert.Equal(t, upsertExtractionQuery, call.query)
				rec, ok := call.arg.(*domain.ExtractionRecord)
				require.True(t, ok)
				assert.Equal(t, i, rec.RowIndex)
			}
		})
	}
}

func TestReplaceDocumentRows_Errors(t *testing.T) {
	tests := []struct {
		name      string
		failQuery string
		wantCalls int
	}{
		{"delete fails before any insert", deleteExtractionQuery, 0},
		{"insert fails", upsertExtractionQuery, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecer{failQuery: tt.failQuery}
			records := BuildExtractionRecords("uploads/invoice-7.pdf", tableExtraction(2), nil)

			err := replaceDocumentRows(context.Background(), exec, "invoice-7.pdf", records)

			assert.Error(t, err)
			assert.Len(t, exec.calls, tt.wantCalls)
		})
	}
}
