package port

import (
	"context"

	"docflow/internal/domain"
)

// SettingsStore persists the processing configuration.
type SettingsStore interface {
	Load(ctx context.Context) (*domain.ProcessingConfig, error)
	Save(ctx context.Context, cfg *domain.ProcessingConfig) error
}
