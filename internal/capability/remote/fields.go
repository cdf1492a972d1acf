package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"docflow/internal/domain"
)

// extractionEnvelope is the remote extraction result document. Field names
// are matched case-insensitively, so both camelCase and PascalCase payloads decode.
type extractionEnvelope struct {
	DocumentID      string          `json:"documentId"`
	ResultsDocument resultsDocument `json:"resultsDocument"`
}

type resultsDocument struct {
	DocumentTypeID string         `json:"documentTypeId"`
	Fields         []resultsField `json:"fields"`
	Tables         []resultsTable `json:"tables"`
}

type resultsField struct {
	FieldID   string         `json:"fieldId"`
	FieldName string         `json:"fieldName"`
	FieldType string         `json:"fieldType"`
	IsMissing bool           `json:"isMissing"`
	Values    []resultsValue `json:"values"`
}

type resultsValue struct {
	Value             string         `json:"value"`
	UnformattedValue  string         `json:"unformattedValue"`
	Confidence        *float64       `json:"confidence"`
	OCRConfidence     *float64       `json:"ocrConfidence"`
	OperatorConfirmed bool           `json:"operatorConfirmed"`
	Components        []resultsField `json:"components"`
}

type resultsTable struct {
	FieldID   string              `json:"fieldId"`
	FieldName string              `json:"fieldName"`
	IsMissing bool                `json:"isMissing"`
	Values    []resultsTableValue `json:"values"`
}

type resultsTableValue struct {
	Cells      []resultsCell `json:"cells"`
	ColumnInfo []struct {
		FieldID   string `json:"fieldId"`
		FieldName string `json:"fieldName"`
	} `json:"columnInfo"`
}

type resultsCell struct {
	RowIndex    int            `json:"rowIndex"`
	ColumnIndex int            `json:"columnIndex"`
	IsHeader    bool           `json:"isHeader"`
	IsMissing   bool           `json:"isMissing"`
	Values      []resultsValue `json:"values"`
}

// decodeExtraction parses a results document and flattens it into fields.
// Scalar fields get row and column -1; table cells keep their coordinates.
func decodeExtraction(raw json.RawMessage) (string, []domain.ExtractedField, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, fmt.Errorf("empty extraction result")
	}
	var env extractionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("decoding extraction result: %w", err)
	}
	doc := env.ResultsDocument
	return doc.DocumentTypeID, flattenFields(doc), nil
}

func flattenFields(doc resultsDocument) []domain.ExtractedField {
	var out []domain.ExtractedField

	for _, f := range doc.Fields {
		out = append(out, scalarField(f, -1, -1))
		if !strings.EqualFold(f.FieldType, "table") {
			continue
		}
		// Generative table fields carry one value per row, one component per column.
		for row, v := range f.Values {
			for col, comp := range v.Components {
				out = append(out, scalarField(comp, row, col))
			}
		}
	}

	for _, t := range doc.Tables {
		for _, tv := range t.Values {
			for _, cell := range tv.Cells {
				if cell.IsHeader {
					continue
				}
				id, name := t.FieldID, t.FieldName
				if cell.ColumnIndex >= 0 && cell.ColumnIndex < len(tv.ColumnInfo) {
					id = tv.ColumnInfo[cell.ColumnIndex].FieldID
					name = tv.ColumnInfo[cell.ColumnIndex].FieldName
				}
				out = append(out, scalarField(resultsField{
					FieldID:   id,
					FieldName: name,
					IsMissing: cell.IsMissing,
					Values:    cell.Values,
				}, cell.RowIndex, cell.ColumnIndex))
			}
		}
	}
	return out
}

func scalarField(f resultsField, row, col int) domain.ExtractedField {
	field := domain.ExtractedField{
		FieldID:     f.FieldID,
		FieldName:   f.FieldName,
		IsMissing:   f.IsMissing,
		RowIndex:    row,
		ColumnIndex: col,
	}
	if len(f.Values) == 0 {
		field.IsMissing = true
		return field
	}
	v := f.Values[0]
	field.Value = v.Value
	field.UnformattedValue = v.UnformattedValue
	field.Confidence = v.Confidence
	field.OCRConfidence = v.OCRConfidence
	field.OperatorConfirmed = v.OperatorConfirmed
	return field
}
