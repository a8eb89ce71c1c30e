package models

import (
	"fmt"

	"github.com/desertthunder/ytspin/internal/shared"
)

// Expansion is one generated variant of a text file entry.
type Expansion struct {
	base
	textFileID string
	entryIndex int
	content    string
	seed       uint64
}

var _ Model = (*Expansion)(nil)

// NewExpansion creates an unsaved expansion. Seed is 0 when the variant came from an unseeded source.
func NewExpansion(sequence int, textFileID string, entryIndex int, content string, seed uint64) *Expansion {
	return &Expansion{
		base:       newBase(sequence),
		textFileID: textFileID,
		entryIndex: entryIndex,
		content:    content,
		seed:       seed,
	}
}

func (e *Expansion) TextFileID() string  { return e.textFileID }
func (e *Expansion) EntryIndex() int     { return e.entryIndex }
func (e *Expansion) Content() string     { return e.content }
func (e *Expansion) Seed() uint64        { return e.seed }
func (e *Expansion) SetContent(c string) { e.content = c }

// Validate checks the owning text file and entry index.
func (e *Expansion) Validate() error {
	if e.textFileID == "" {
		return fmt.Errorf("%w: text file ID is required", shared.ErrInvalidInput)
	}
	if e.entryIndex < 0 {
		return fmt.Errorf("%w: negative entry index %d", shared.ErrInvalidInput, e.entryIndex)
	}
	return nil
}
