package spinner

import (
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/ytspin/internal/shared"
)

const (
	openBrace  = '{'
	closeBrace = '}'
	separator  = "|"
)

// Kind distinguishes literal text from choice groups.
type Kind int

const (
	Literal Kind = iota
	Choice
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Segment is either a run of literal text or a choice group.
//
// Text is set for [Literal] segments, Options (never empty) for [Choice] segments.
type Segment struct {
	Kind    Kind     `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Template is a parsed text block: literal segments interleaved with choice groups.
type Template struct {
	Segments []Segment `json:"segments"`
}

// Parse splits text into literal and choice segments. It never fails: malformed groups are kept as literal text.
func Parse(text string) Template {
	var (
		segments []Segment
		lit      strings.Builder
	)

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		segments = append(segments, Segment{Kind: Literal, Text: lit.String()})
		lit.Reset()
	}

	i := 0
	for i < len(text) {
		if text[i] != openBrace {
			next := strings.IndexByte(text[i:], openBrace)
			if next < 0 {
				lit.WriteString(text[i:])
				break
			}
			lit.WriteString(text[i : i+next])
			i += next
			continue
		}

		end := strings.IndexAny(text[i+1:], "{}")
		if end < 0 {
			// unterminated: the opener and the rest of the input are literal
			lit.WriteString(text[i:])
			break
		}
		end += i + 1

		if text[end] == openBrace {
			// nested opener: the pending group degrades to literal text up to the inner brace
			lit.WriteString(text[i:end])
			i = end
			continue
		}

		flush()
		segments = append(segments, Segment{
			Kind:    Choice,
			Options: strings.Split(text[i+1:end], separator),
		})
		i = end + 1
	}
	flush()

	return Template{Segments: segments}
}

// String re-serializes the template. For any input s, Parse(s).String() == s.
func (t Template) String() string {
	var b strings.Builder
	for _, seg := range t.Segments {
		switch seg.Kind {
		case Choice:
			b.WriteByte(openBrace)
			b.WriteString(strings.Join(seg.Options, separator))
			b.WriteByte(closeBrace)
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Choices returns the number of choice groups in the template.
func (t Template) Choices() int {
	n := 0
	for _, seg := range t.Segments {
		if seg.Kind == Choice {
			n++
		}
	}
	return n
}

// Combinations returns how many distinct selections the template allows, saturating at [math.MaxInt].
//
// Distinct selections can still render the same string when options repeat.
func (t Template) Combinations() int {
	total := 1
	for _, seg := range t.Segments {
		if seg.Kind != Choice {
			continue
		}
		n := len(seg.Options)
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}

// Expand resolves every choice group to one option drawn from src and concatenates the result.
func (t Template) Expand(src Source) (string, error) {
	if src == nil {
		return "", fmt.Errorf("%w: nil randomness source", shared.ErrInvalidArgument)
	}

	var b strings.Builder
	for _, seg := range t.Segments {
		if seg.Kind != Choice {
			b.WriteString(seg.Text)
			continue
		}

		n := len(seg.Options)
		idx := src.IntN(n)
		if idx < 0 || idx >= n {
			return "", fmt.Errorf("%w: source returned index %d outside [0, %d)", shared.ErrInvalidArgument, idx, n)
		}
		b.WriteString(seg.Options[idx])
	}

	return b.String(), nil
}

// Variants expands the template n times, drawing fresh choices for each expansion.
func (t Template) Variants(n int, src Source) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative variant count %d", shared.ErrInvalidArgument, n)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil randomness source", shared.ErrInvalidArgument)
	}

	out := make([]string, 0, n)
	for range n {
		s, err := t.Expand(src)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Expand is shorthand for t.Expand(src).
func Expand(t Template, src Source) (string, error) {
	return t.Expand(src)
}
