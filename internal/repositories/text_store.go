package repositories

import (
	"context"
	"errors"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

// TextStoreAdapter implements services.TextFileStore using TextFileRepository.
//
// A profile without a stored file reads as empty text, matching the panel backend.
type TextStoreAdapter struct {
	repo *TextFileRepository
}

// NewTextStoreAdapter creates a new TextStoreAdapter with the given repository
func NewTextStoreAdapter(repo *TextFileRepository) *TextStoreAdapter {
	return &TextStoreAdapter{repo: repo}
}

// GetTextFile returns the stored content or "" when the profile has none.
func (a *TextStoreAdapter) GetTextFile(_ context.Context, profile string, kind models.Kind) (string, error) {
	file, err := a.repo.GetByProfile(profile, kind)
	if errors.Is(err, shared.ErrTextFileNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return file.Content(), nil
}

// SaveTextFile creates or replaces the stored content.
func (a *TextStoreAdapter) SaveTextFile(_ context.Context, profile string, kind models.Kind, content string) error {
	_, err := a.repo.Upsert(profile, kind, content)
	return err
}
