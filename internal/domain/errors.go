package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNoDocuments         = errors.New("no documents to process")
	ErrPromptsNotFound     = errors.New("prompt bundle not found")
	ErrDispatcherClosed    = errors.New("dispatcher is shutting down")
	ErrInvalidSettings     = errors.New("invalid processing settings")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnauthorized        = errors.New("unauthorized")
)
