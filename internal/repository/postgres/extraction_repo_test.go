package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/repository/postgres"
)

func floatPtr(f float64) *float64 { return &f }

func extractionFixture() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		DocumentTypeID: "invoices",
		Fields: []domain.ExtractedField{
			{FieldID: "total", FieldName: "Total", Value: "10.00 ", UnformattedValue: "10", Confidence: floatPtr(0.9), RowIndex: -1, ColumnIndex: -1},
			{FieldID: "vendor", FieldName: "Vendor", Value: "ACME", RowIndex: -1, ColumnIndex: -1},
			{FieldID: "po", FieldName: "PO Number", IsMissing: true, RowIndex: -1, ColumnIndex: -1},
			{FieldID: "items.qty", FieldName: "Quantity", Value: "2", RowIndex: 1, ColumnIndex: 0},
			{FieldID: "items.qty", FieldName: "Quantity", Value: "3", RowIndex: 2, ColumnIndex: 0},
		},
	}
}

func TestBuildExtractionRecords_ExtractionOnly(t *testing.T) {
	records := postgres.BuildExtractionRecords("uploads/invoice-7.pdf", extractionFixture(), nil)

	require.Len(t, records, 5)
	total := records[0]
	assert.Equal(t, "invoice-7.pdf", total.Filename)
	assert.Equal(t, "invoice-7", total.DocumentID)
	assert.Equal(t, "invoices", total.DocumentTypeID)
	require.NotNil(t, total.FieldValue)
	assert.Equal(t, "10.00 ", *total.FieldValue)
	assert.Nil(t, total.ValidatedFieldValue)
	assert.False(t, total.IsCorrect)
	require.NotNil(t, total.OperatorConfirmed)
	assert.False(t, *total.OperatorConfirmed)

	missing := records[2]
	assert.True(t, missing.IsMissing)
	assert.Nil(t, missing.FieldValue)
	assert.Nil(t, missing.FieldUnformattedValue)

	assert.Equal(t, 2, records[4].RowIndex)
}

func TestBuildExtractionRecords_MergesValidation(t *testing.T) {
	validation := &domain.ValidationResult{
		Fields: []domain.ExtractedField{
			{FieldID: "total", FieldName: "Total", Value: "10.00", OperatorConfirmed: true, RowIndex: -1, ColumnIndex: -1},
			{FieldID: "vendor", FieldName: "Vendor", Value: "ACME Corp", RowIndex: -1, ColumnIndex: -1},
			{FieldID: "items.qty", FieldName: "Quantity", Value: "4", RowIndex: 2, ColumnIndex: 0},
		},
	}

	records := postgres.BuildExtractionRecords("uploads/invoice-7.pdf", extractionFixture(), validation)
	require.Len(t, records, 5)

	byKey := func(id string, row int) domain.ExtractionRecord {
		for _, r := range records {
			if r.FieldID == id && r.RowIndex == row {
				return r
			}
		}
		t.Fatalf("no record for %s row %d", id, row)
		return domain.ExtractionRecord{}
	}

	total := byKey("total", -1)
	require.NotNil(t, total.ValidatedFieldValue)
	assert.Equal(t, "10.00", *total.ValidatedFieldValue)
	assert.True(t, total.IsCorrect, "whitespace differences are ignored")
	assert.True(t, *total.OperatorConfirmed)

	vendor := byKey("vendor", -1)
	assert.Equal(t, "ACME Corp", *vendor.ValidatedFieldValue)
	assert.False(t, vendor.IsCorrect)

	assert.Nil(t, byKey("po", -1).ValidatedFieldValue)
	assert.Nil(t, byKey("items.qty", 1).ValidatedFieldValue)

	row2 := byKey("items.qty", 2)
	assert.Equal(t, "4", *row2.ValidatedFieldValue)
	assert.False(t, row2.IsCorrect)
}

func TestBuildExtractionRecords_NoFields(t *testing.T) {
	records := postgres.BuildExtractionRecords("uploads/empty.pdf", &domain.ExtractionResult{}, nil)
	assert.Empty(t, records)
}
