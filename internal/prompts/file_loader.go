// Package prompts loads the prompt bundles that parameterize generative
// classification and extraction.
package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docflow/internal/domain"
)

// FileLoader reads bundles from <dir>/<name>_prompts.json.
type FileLoader struct {
	dir string
}

// NewFileLoader creates a FileLoader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

// Load returns the named bundle, or domain.ErrPromptsNotFound when the file
// does not exist.
func (l *FileLoader) Load(_ context.Context, name string) (domain.Prompts, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid prompt bundle name %q", name)
	}

	path := filepath.Join(l.dir, name+"_prompts.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrPromptsNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading prompt bundle %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("prompt bundle %s is not valid JSON", path)
	}
	return domain.Prompts(data), nil
}
