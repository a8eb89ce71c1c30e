package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
)

// Kind names one of the two template files a profile owns.
type Kind string

const (
	Titles       Kind = "titles"
	Descriptions Kind = "descriptions"
)

// Kinds lists every known [Kind] in display order.
var Kinds = []Kind{Titles, Descriptions}

// ParseKind validates a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Titles, Descriptions:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown text kind %q (want titles or descriptions)", shared.ErrInvalidInput, s)
	}
}

// Delimiter returns the batch delimiter entries of this kind are separated by.
func (k Kind) Delimiter() string {
	if k == Descriptions {
		return spinner.DescriptionDelimiter
	}
	return spinner.TitleDelimiter
}

// Joiner returns the text placed between entries when writing a batch of this kind back out.
func (k Kind) Joiner() string {
	if k == Descriptions {
		return "\n\n" + spinner.DescriptionDelimiter + "\n\n"
	}
	return "\n"
}

// Label returns the singular display name, e.g. "title".
func (k Kind) Label() string {
	return strings.TrimSuffix(string(k), "s")
}

func (k Kind) String() string { return string(k) }
