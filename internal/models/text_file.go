package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
)

// TextFile is a profile's titles or descriptions template text.
type TextFile struct {
	base
	profile string
	kind    Kind
	content string
}

var _ Model = (*TextFile)(nil)

// NewTextFile creates an unsaved text file.
func NewTextFile(sequence int, profile string, kind Kind, content string) *TextFile {
	return &TextFile{
		base:    newBase(sequence),
		profile: profile,
		kind:    kind,
		content: content,
	}
}

func (f *TextFile) Profile() string     { return f.profile }
func (f *TextFile) Kind() Kind          { return f.kind }
func (f *TextFile) Content() string     { return f.content }
func (f *TextFile) SetContent(c string) { f.content = c }
func (f *TextFile) SetProfile(p string) { f.profile = p }

// Validate checks the profile name and kind.
func (f *TextFile) Validate() error {
	if strings.TrimSpace(f.profile) == "" {
		return fmt.Errorf("%w: profile is required", shared.ErrInvalidInput)
	}
	if _, err := ParseKind(string(f.kind)); err != nil {
		return err
	}
	return nil
}

// Entries splits the content into its non-blank templates.
func (f *TextFile) Entries() []string {
	entries, err := spinner.SplitEntries(f.content, f.kind.Delimiter())
	if err != nil {
		return nil
	}
	return entries
}

// Count returns how many non-blank templates the content holds, as shown by the editor's entry counter.
func (f *TextFile) Count() int {
	n, err := spinner.Count(f.content, f.kind.Delimiter())
	if err != nil {
		return 0
	}
	return n
}
