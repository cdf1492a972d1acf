package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docflow/internal/domain"
	"docflow/internal/service"
)

func TestResolveExtractor(t *testing.T) {
	invoices := domain.ExtractorRef{ID: "invoices-v2", Name: "invoices"}
	receipts := domain.ExtractorRef{ID: "receipts-v1", Name: "receipts"}
	extractors := domain.NewExtractorMap(
		domain.ExtractorEntry{DocumentTypeID: "invoices", Extractor: invoices},
		domain.ExtractorEntry{DocumentTypeID: "receipts", Extractor: receipts},
	)

	tests := []struct {
		name       string
		outcome    domain.ClassificationOutcome
		extractors domain.ExtractorMap
		want       domain.ExtractorRef
		wantOK     bool
	}{
		{"mapped type", domain.Classified("receipts"), extractors, receipts, true},
		{"unmapped type skips", domain.Classified("contracts"), extractors, domain.ExtractorRef{}, false},
		{"no type uses first entry", domain.ClassificationSkipped(), extractors, invoices, true},
		{"empty type treated as skipped", domain.Classified(""), extractors, invoices, true},
		{"empty map", domain.ClassificationSkipped(), domain.ExtractorMap{}, domain.ExtractorRef{}, false},
		{
			"entry without id",
			domain.Classified("invoices"),
			domain.NewExtractorMap(domain.ExtractorEntry{DocumentTypeID: "invoices", Extractor: domain.ExtractorRef{Name: "invoices"}}),
			domain.ExtractorRef{},
			false,
		},
		{
			"mapped entry without name",
			domain.Classified("invoices"),
			domain.NewExtractorMap(domain.ExtractorEntry{DocumentTypeID: "invoices", Extractor: domain.ExtractorRef{ID: "invoices-v2"}}),
			domain.ExtractorRef{},
			false,
		},
		{
			"first entry without name",
			domain.ClassificationSkipped(),
			domain.NewExtractorMap(domain.ExtractorEntry{DocumentTypeID: "invoices", Extractor: domain.ExtractorRef{ID: "invoices-v2"}}),
			domain.ExtractorRef{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := service.ResolveExtractor(tt.outcome, tt.extractors)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
