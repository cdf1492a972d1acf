package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// SettingsService manages the processing configuration. Every value it
// returns is an independent copy, so later updates never leak into runs
// already dispatched.
type SettingsService interface {
	Get(ctx context.Context) (*domain.ProcessingConfig, error)
	Update(ctx context.Context, cfg *domain.ProcessingConfig) (*domain.ProcessingConfig, error)
}

type settingsService struct {
	store port.SettingsStore

	mu      sync.RWMutex
	current *domain.ProcessingConfig
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(store port.SettingsStore) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) Get(ctx context.Context) (*domain.ProcessingConfig, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return current.Clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		cfg, err := s.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		s.current = cfg
	}
	return s.current.Clone(), nil
}

func (s *settingsService) Update(ctx context.Context, cfg *domain.ProcessingConfig) (*domain.ProcessingConfig, error) {
	if err := ValidateSettings(cfg); err != nil {
		return nil, err
	}

	next := cfg.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	s.current = next

	log.Info().
		Str("project_id", next.Project.ID).
		Bool("classification", next.PerformClassification).
		Bool("extraction", next.PerformExtraction).
		Int("extractors", next.Project.ExtractorsByDocumentType.Len()).
		Msg("settingsService.Update: settings updated")
	return next.Clone(), nil
}

// ValidateSettings checks that enabled stages have a project to run against
// and that every mapped extractor is fully identified.
func ValidateSettings(cfg *domain.ProcessingConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidSettings)
	}
	if (cfg.PerformClassification || cfg.PerformExtraction) && cfg.Project.ID == "" {
		return fmt.Errorf("%w: project.id is required when classification or extraction is enabled", domain.ErrInvalidSettings)
	}
	for _, e := range cfg.Project.ExtractorsByDocumentType.Entries() {
		if e.Extractor.ID == "" || e.Extractor.Name == "" {
			return fmt.Errorf("%w: extractor for %q needs an id and a name", domain.ErrInvalidSettings, e.DocumentTypeID)
		}
	}
	return nil
}
