// package services defines interface TextFileStore for reading and writing profile template text
package services

import (
	"context"

	"github.com/desertthunder/ytspin/internal/models"
)

// TextFileStore reads and writes a profile's titles or descriptions text.
type TextFileStore interface {
	// GetTextFile returns the stored text, or "" when nothing has been saved yet.
	GetTextFile(ctx context.Context, profile string, kind models.Kind) (string, error)

	// SaveTextFile replaces the stored text.
	SaveTextFile(ctx context.Context, profile string, kind models.Kind, content string) error
}

// TextFileRequest is the body of a save request, named the way the panel backend expects.
type TextFileRequest struct {
	ProfileName string `json:"profile_name"`
	FileType    string `json:"file_type"`
	Content     string `json:"content"`
}

// TextFileResponse is the body returned when reading a text file.
type TextFileResponse struct {
	Content string `json:"content"`
}
