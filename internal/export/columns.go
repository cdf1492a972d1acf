// Package export renders extraction records as CSV or XLSX downloads.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docflow/internal/domain"
)

// columns defines the header row shared by every export format.
var columns = []string{
	"Filename",
	"Document ID",
	"Document Type",
	"Field ID",
	"Field",
	"Missing",
	"Value",
	"Unformatted Value",
	"Validated Value",
	"Correct",
	"Confidence",
	"OCR Confidence",
	"Operator Confirmed",
	"Row",
	"Column",
	"Timestamp",
}

// Columns returns a copy of the export header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// recordToRow converts one record to a row aligned with columns.
func recordToRow(rec *domain.ExtractionRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.Filename
	row[1] = rec.DocumentID
	row[2] = rec.DocumentTypeID
	row[3] = rec.FieldID
	row[4] = rec.Field
	row[5] = formatBool(rec.IsMissing)
	row[6] = deref(rec.FieldValue)
	row[7] = deref(rec.FieldUnformattedValue)
	row[8] = deref(rec.ValidatedFieldValue)
	row[9] = formatBool(rec.IsCorrect)
	row[10] = formatFloat(rec.Confidence)
	row[11] = formatFloat(rec.OCRConfidence)
	if rec.OperatorConfirmed != nil {
		row[12] = formatBool(*rec.OperatorConfirmed)
	}
	row[13] = strconv.Itoa(rec.RowIndex)
	row[14] = strconv.Itoa(rec.ColumnIndex)
	if !rec.Timestamp.IsZero() {
		row[15] = rec.Timestamp.Format(time.RFC3339)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "extractions"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
