package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// Capabilities groups the remote operations a pipeline run sequences.
type Capabilities struct {
	Digitizer  port.Digitizer
	Classifier port.Classifier
	Extractor  port.Extractor
	Validator  port.Validator
}

// PipelineRunner drives a single document through digitize, classify,
// extract and validate, recording each stage in the StatusRegistry.
type PipelineRunner struct {
	caps        Capabilities
	sink        port.ResultSink
	prompts     port.PromptLoader
	registry    *StatusRegistry
	callTimeout time.Duration
}

// NewPipelineRunner creates a PipelineRunner. A callTimeout of zero leaves
// capability calls bounded only by the run context.
func NewPipelineRunner(
	caps Capabilities,
	sink port.ResultSink,
	prompts port.PromptLoader,
	registry *StatusRegistry,
	callTimeout time.Duration,
) *PipelineRunner {
	return &PipelineRunner{
		caps:        caps,
		sink:        sink,
		prompts:     prompts,
		registry:    registry,
		callTimeout: callTimeout,
	}
}

// Run processes doc against cfg. It never returns an error or panics to the
// caller: every failure ends as a Failed status in the registry. The same
// document must not be run concurrently.
func (p *PipelineRunner) Run(ctx context.Context, doc domain.Document, cfg *domain.ProcessingConfig) {
	logger := log.With().Str("document_id", doc.ID).Str("path", doc.Path).Logger()
	if cfg == nil {
		cfg = &domain.ProcessingConfig{}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("pipelineRunner.Run: recovered from panic")
			p.registry.Set(doc.ID, domain.StageFailed)
		}
	}()

	ctx = domain.WithProjectID(ctx, cfg.Project.ID)
	start := time.Now()
	if err := p.run(ctx, doc, cfg, logger); err != nil {
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("pipelineRunner.Run: processing failed")
		p.registry.Set(doc.ID, domain.StageFailed)
		return
	}

	p.registry.Set(doc.ID, domain.StageCompleted)
	logger.Info().Dur("elapsed", time.Since(start)).Msg("pipelineRunner.Run: document processed")
}

func (p *PipelineRunner) run(ctx context.Context, doc domain.Document, cfg *domain.ProcessingConfig, logger zerolog.Logger) error {
	p.registry.Set(doc.ID, domain.StageDigitizing)
	digitizedID, err := p.digitize(ctx, doc.Path)
	if err != nil {
		return fmt.Errorf("digitizing: %w", err)
	}
	logger = logger.With().Str("digitized_id", digitizedID).Logger()
	logger.Debug().Msg("pipelineRunner.run: document digitized")

	outcome := domain.ClassificationSkipped()
	if cfg.PerformClassification {
		p.registry.Set(doc.ID, domain.StageClassifying)
		outcome = p.classify(ctx, doc, digitizedID, cfg, logger)
	}

	if !cfg.PerformExtraction {
		return nil
	}

	p.registry.Set(doc.ID, domain.StageExtracting)
	extractor, ok := ResolveExtractor(outcome, cfg.Project.ExtractorsByDocumentType)
	if !ok {
		docType, _ := outcome.DocumentTypeID()
		logger.Info().Str("document_type_id", docType).Msg("pipelineRunner.run: no extractor resolved, skipping extraction")
		return nil
	}
	return p.extract(ctx, doc, digitizedID, extractor, cfg, logger)
}

func (p *PipelineRunner) digitize(ctx context.Context, path string) (string, error) {
	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	digitizedID, err := p.caps.Digitizer.Digitize(callCtx, path)
	if err != nil {
		return "", err
	}
	if digitizedID == "" {
		return "", errors.New("digitizer returned an empty document id")
	}
	return digitizedID, nil
}

// classify is best effort: any failure yields a skipped outcome so extraction
// can still fall back to the default extractor.
func (p *PipelineRunner) classify(ctx context.Context, doc domain.Document, digitizedID string, cfg *domain.ProcessingConfig, logger zerolog.Logger) domain.ClassificationOutcome {
	classifierID := cfg.ClassifierID()
	if classifierID == "" {
		logger.Warn().Msg("pipelineRunner.classify: classification enabled but no classifier configured")
		return domain.ClassificationSkipped()
	}

	var prompts domain.Prompts
	if classifierID == domain.GenerativeClassifierID {
		var err error
		prompts, err = p.loadPrompts(ctx, domain.ClassificationPromptsName, logger)
		if err != nil {
			logger.Error().Err(err).Msg("pipelineRunner.classify: loading classification prompts failed")
			return domain.ClassificationSkipped()
		}
	}

	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	docType, err := p.caps.Classifier.Classify(callCtx, doc.Path, digitizedID, classifierID, prompts, cfg.ValidateClassification)
	if err != nil {
		logger.Error().Err(err).Str("classifier_id", classifierID).Msg("pipelineRunner.classify: classification failed, continuing without document type")
		return domain.ClassificationSkipped()
	}

	logger.Debug().Str("document_type_id", docType).Msg("pipelineRunner.classify: document classified")
	return domain.Classified(docType)
}

func (p *PipelineRunner) extract(ctx context.Context, doc domain.Document, digitizedID string, extractor domain.ExtractorRef, cfg *domain.ProcessingConfig, logger zerolog.Logger) error {
	logger = logger.With().Str("extractor_id", extractor.ID).Logger()

	var prompts domain.Prompts
	if cfg.Project.ID == domain.SampleProjectID {
		var err error
		prompts, err = p.loadPrompts(ctx, extractor.Name, logger)
		if err != nil {
			return fmt.Errorf("loading prompts for extractor %s: %w", extractor.Name, err)
		}
	}

	extractCtx, cancel := p.callContext(ctx)
	result, err := p.caps.Extractor.Extract(extractCtx, extractor.ID, digitizedID, prompts)
	cancel()
	if err != nil {
		return fmt.Errorf("extracting with %s: %w", extractor.ID, err)
	}
	if result == nil {
		return fmt.Errorf("extractor %s returned no result", extractor.ID)
	}

	if err := p.write(ctx, doc.Path, result, nil); err != nil {
		return fmt.Errorf("writing extraction results: %w", err)
	}
	logger.Debug().Int("fields", len(result.Fields)).Msg("pipelineRunner.extract: extraction results written")

	if !cfg.ValidateExtraction {
		return nil
	}

	validateCtx, cancel := p.callContext(ctx)
	validated, err := p.caps.Validator.Validate(validateCtx, extractor.ID, digitizedID, result, prompts)
	cancel()
	if err != nil {
		return fmt.Errorf("validating extraction with %s: %w", extractor.ID, err)
	}
	if validated == nil {
		return fmt.Errorf("validator for %s returned no result", extractor.ID)
	}

	if err := p.write(ctx, doc.Path, result, validated); err != nil {
		return fmt.Errorf("writing validated results: %w", err)
	}
	logger.Debug().Msg("pipelineRunner.extract: validated results written")
	return nil
}

func (p *PipelineRunner) write(ctx context.Context, path string, extraction *domain.ExtractionResult, validation *domain.ValidationResult) error {
	callCtx, cancel := p.callContext(ctx)
	defer cancel()
	return p.sink.Write(callCtx, path, extraction, validation)
}

// loadPrompts treats a missing bundle as "no prompts", matching how the
// capabilities behave without a bundle.
func (p *PipelineRunner) loadPrompts(ctx context.Context, name string, logger zerolog.Logger) (domain.Prompts, error) {
	if p.prompts == nil {
		return nil, nil
	}
	prompts, err := p.prompts.Load(ctx, name)
	if errors.Is(err, domain.ErrPromptsNotFound) {
		logger.Warn().Str("bundle", name).Msg("pipelineRunner.loadPrompts: prompt bundle not found, continuing without prompts")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

func (p *PipelineRunner) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.callTimeout)
}
