package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"docflow/internal/config"
	"docflow/internal/domain"
	"docflow/internal/port"
)

// FileUploadInput is the DTO for file upload requests.
type FileUploadInput struct {
	Filename string
	Size     int64
	File     io.ReadSeeker
}

// BatchSubmitter starts pipeline runs for a batch of documents.
type BatchSubmitter interface {
	SubmitBatch(docs []domain.Document, cfg *domain.ProcessingConfig) ([]string, error)
}

// ProcessService is the entry point for uploading files and triggering
// pipeline runs over them.
type ProcessService interface {
	Upload(ctx context.Context, input FileUploadInput) (*domain.FileInfo, error)
	ListFiles(ctx context.Context) ([]domain.FileInfo, error)
	ProcessBatch(ctx context.Context, filenames []string) ([]string, error)
	Status() domain.StatusMessage
}

type processService struct {
	storage   port.ObjectStorage
	cfg       *config.S3Config
	registry  *StatusRegistry
	submitter BatchSubmitter
	settings  SettingsService
}

// NewProcessService creates a new ProcessService implementation.
func NewProcessService(
	storage port.ObjectStorage,
	cfg *config.S3Config,
	registry *StatusRegistry,
	submitter BatchSubmitter,
	settings SettingsService,
) ProcessService {
	return &processService{
		storage:   storage,
		cfg:       cfg,
		registry:  registry,
		submitter: submitter,
		settings:  settings,
	}
}

func (s *processService) Upload(ctx context.Context, input FileUploadInput) (*domain.FileInfo, error) {
	filename := filepath.Base(strings.ReplaceAll(input.Filename, `\`, "/"))
	if filename == "." || filename == "/" || filename == "" {
		return nil, domain.ErrUnsupportedFileType
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := io.ReadFull(input.File, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if !contentMatches(fileType, buf[:n]) {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := s.cfg.UploadPrefix + filename
	contentType := domain.AllowedFileTypes[fileType]

	log.Info().Str("filename", filename).Str("content_type", contentType).Int64("size", input.Size).
		Msg("processService.Upload: uploading file")

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Size,
	}); err != nil {
		log.Error().Err(err).Str("key", key).Msg("processService.Upload: storage upload failed")
		return nil, domain.ErrUploadFailed
	}

	info := &domain.FileInfo{
		Filename:   filename,
		DocumentID: domain.DocumentIDFromFilename(filename),
		Path:       key,
		Size:       input.Size,
		Status:     domain.StageUploaded,
	}
	if status, ok := s.registry.Get(info.DocumentID); ok {
		info.Status = status
	}
	return info, nil
}

// contentMatches checks the leading bytes against the declared type.
func contentMatches(fileType domain.FileType, head []byte) bool {
	if fileType == domain.FileTypeTIFF {
		return bytes.HasPrefix(head, []byte("II*\x00")) || bytes.HasPrefix(head, []byte("MM\x00*"))
	}
	detected, ok := domain.AllowedContentTypes[http.DetectContentType(head)]
	return ok && detected == fileType
}

func (s *processService) ListFiles(ctx context.Context) ([]domain.FileInfo, error) {
	objects, err := s.storage.List(ctx, s.cfg.Bucket, s.cfg.UploadPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing uploaded files: %w", err)
	}

	files := make([]domain.FileInfo, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, s.cfg.UploadPrefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			continue
		}

		info := domain.FileInfo{
			Filename:     name,
			DocumentID:   domain.DocumentIDFromFilename(name),
			Path:         obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			Status:       domain.StageUploaded,
		}
		if status, ok := s.registry.Get(info.DocumentID); ok {
			info.Status = status
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Filename < files[j].Filename })
	return files, nil
}

// ProcessBatch dispatches the named files, or every uploaded file when
// filenames is empty, against a snapshot of the current settings.
func (s *processService) ProcessBatch(ctx context.Context, filenames []string) ([]string, error) {
	files, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := selectDocuments(files, filenames)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	ids, err := s.submitter.SubmitBatch(docs, cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Int("documents", len(ids)).Str("project_id", cfg.Project.ID).Msg("processService.ProcessBatch: batch dispatched")
	return ids, nil
}

func selectDocuments(files []domain.FileInfo, filenames []string) ([]domain.Document, error) {
	if len(filenames) == 0 {
		docs := make([]domain.Document, 0, len(files))
		for _, f := range files {
			docs = append(docs, domain.NewDocument(f.Filename, f.Path))
		}
		return docs, nil
	}

	byName := make(map[string]domain.FileInfo, len(files))
	for _, f := range files {
		byName[f.Filename] = f
	}

	seen := make(map[string]struct{}, len(filenames))
	docs := make([]domain.Document, 0, len(filenames))
	for _, name := range filenames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, domain.ErrDocumentNotFound)
		}
		docs = append(docs, domain.NewDocument(f.Filename, f.Path))
	}
	return docs, nil
}

func (s *processService) Status() domain.StatusMessage {
	return domain.StatusMessage{Documents: s.registry.SnapshotAll()}
}
