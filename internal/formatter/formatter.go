// package formatter renders spun variants as plain text, JSON, CSV or Markdown.
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
)

// Formats lists the supported formats in help-text order.
var Formats = []Format{Text, JSON, CSV, Markdown}

// ParseFormat accepts a format name or one of its short aliases (txt, md).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Record is one spun variant. Entry is the index of the source entry it came from.
type Record struct {
	Index int    `json:"index"`
	Entry int    `json:"entry"`
	Text  string `json:"text"`
}

// Export is a batch of variants of a single kind.
type Export struct {
	Kind    models.Kind `json:"kind"`
	Source  string      `json:"source,omitempty"`
	Records []Record    `json:"results"`
}

// NewExport numbers texts in order, treating each as its own entry.
func NewExport(kind models.Kind, source string, texts []string) *Export {
	e := &Export{Kind: kind, Source: source, Records: make([]Record, 0, len(texts))}
	for i, text := range texts {
		e.Records = append(e.Records, Record{Index: i, Entry: i, Text: text})
	}
	return e
}

// Add appends variants of the entry at index entry.
func (e *Export) Add(entry int, texts ...string) {
	for _, text := range texts {
		e.Records = append(e.Records, Record{Index: len(e.Records), Entry: entry, Text: text})
	}
}

// Texts returns the variant texts in order.
func (e *Export) Texts() []string {
	out := make([]string, len(e.Records))
	for i, r := range e.Records {
		out[i] = r.Text
	}
	return out
}

func (e *Export) joiner() string {
	if e.Kind == "" {
		return models.Titles.Joiner()
	}
	return e.Kind.Joiner()
}

// ExportToText joins variants with the kind's joiner: one title per line, descriptions between --- markers.
func ExportToText(export *Export) ([]byte, error) {
	if len(export.Records) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(export.Texts(), export.joiner()) + "\n"), nil
}

// ExportToJSON encodes the export as indented JSON.
func ExportToJSON(export *Export) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts an export to CSV with columns: index, entry, text
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"index", "entry", "text"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range export.Records {
		record := []string{strconv.Itoa(r.Index), strconv.Itoa(r.Entry), r.Text}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading per source entry with its variants as a numbered list.
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	title := "Variants"
	if k := string(export.Kind); k != "" {
		title = strings.ToUpper(k[:1]) + k[1:]
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	if export.Source != "" {
		fmt.Fprintf(&buf, "**Source**: %s\n\n", export.Source)
	}
	fmt.Fprintf(&buf, "**Variants**: %d\n", len(export.Records))

	entry, n := -1, 0
	for _, r := range export.Records {
		if r.Entry != entry {
			entry, n = r.Entry, 0
			fmt.Fprintf(&buf, "\n## Entry %d\n\n", r.Entry+1)
		}
		n++
		// continuation lines are indented so multi-line descriptions stay in the list item
		text := strings.ReplaceAll(r.Text, "\n", "\n   ")
		fmt.Fprintf(&buf, "%d. %s\n", n, text)
	}

	return buf.Bytes(), nil
}

// Render encodes export in the given format.
func Render(export *Export, format Format) ([]byte, error) {
	switch format {
	case Text, "":
		return ExportToText(export)
	case JSON:
		return ExportToJSON(export)
	case CSV:
		return ExportToCSV(export)
	case Markdown:
		return ExportToMarkdown(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// Write renders export and writes it to path, or to w when path is empty or "-".
func Write(export *Export, format Format, path string, w io.Writer) error {
	data, err := Render(export, format)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
