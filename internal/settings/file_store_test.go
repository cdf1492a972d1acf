package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docflow/internal/domain"
	"docflow/internal/settings"
)

func TestFileStore_MissingFileIsZeroConfig(t *testing.T) {
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.json"))

	cfg, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &domain.ProcessingConfig{}, cfg)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.json")
	store := settings.NewFileStore(path)

	cfg := &domain.ProcessingConfig{
		PerformClassification: true,
		PerformExtraction:     true,
		ValidateExtraction:    true,
		Project: domain.ProjectSettings{
			ID:         "proj-1",
			Name:       "Invoices",
			Classifier: &domain.ClassifierRef{ID: "clf-1", Name: "Classifier"},
			ExtractorsByDocumentType: domain.NewExtractorMap(
				domain.ExtractorEntry{DocumentTypeID: "receipts", Extractor: domain.ExtractorRef{ID: "ext-r", Name: "receipts"}},
				domain.ExtractorEntry{DocumentTypeID: "invoices", Extractor: domain.ExtractorRef{ID: "ext-i", Name: "invoices"}},
			),
		},
	}
	require.NoError(t, store.Save(context.Background(), cfg))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	first, ok := loaded.Project.ExtractorsByDocumentType.First()
	require.True(t, ok)
	assert.Equal(t, "receipts", first.DocumentTypeID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestFileStore_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"perform_extraction": true,
		"project": {
			"id": "proj-9",
			"classifier_id": null,
			"extractor_ids": {"invoices": {"id": "ext-1", "name": "invoices"}}
		}
	}`), 0o600))

	cfg, err := settings.NewFileStore(path).Load(context.Background())

	require.NoError(t, err)
	assert.True(t, cfg.PerformExtraction)
	assert.Empty(t, cfg.ClassifierID())
	ref, ok := cfg.Project.ExtractorsByDocumentType.Get("invoices")
	require.True(t, ok)
	assert.Equal(t, "ext-1", ref.ID)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"project":`), 0o600))

	_, err := settings.NewFileStore(path).Load(context.Background())

	assert.Error(t, err)
}
