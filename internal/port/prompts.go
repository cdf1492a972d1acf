package port

import (
	"context"

	"docflow/internal/domain"
)

// PromptLoader loads a named prompt bundle. It returns domain.ErrPromptsNotFound
// when no bundle exists under that name.
type PromptLoader interface {
	Load(ctx context.Context, name string) (domain.Prompts, error)
}
