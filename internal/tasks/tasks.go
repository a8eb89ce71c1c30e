// package tasks expands stored and ad hoc template text into variants.
//
// The core abstraction is Generator, which loads text files, expands every entry and optionally persists the results.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"math"

	"github.com/desertthunder/ytspin/internal/formatter"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
)

// TextFileSource looks up the stored text file for a profile.
type TextFileSource interface {
	GetByProfile(profile string, kind models.Kind) (*models.TextFile, error)
}

// ExpansionSink persists generated variants.
type ExpansionSink interface {
	Create(e *models.Expansion) error
}

// GenerateOpts configures a [Generator.Generate] run.
type GenerateOpts struct {
	Profile string      // Profile whose text file is expanded
	Kind    models.Kind // Titles or descriptions
	Count   int         // Variants per entry (0 means 1)
	Seed    uint64      // Fixed seed for repeatable output (0 means unseeded)
	Save    bool        // Persist each variant as an Expansion
}

// EntryResult holds the variants of one entry of a batch.
type EntryResult struct {
	Index    int      // Position of the entry in the batch
	Template string   // Entry text as parsed
	Variants []string // Generated variants
}

// GenerateResult contains all data from an expansion run.
type GenerateResult struct {
	TextFile     *models.TextFile // Source text file (nil for ad hoc text)
	Kind         models.Kind      // Kind the text was split as
	Entries      []EntryResult    // Per-entry variants, in batch order
	Combinations int              // Distinct outputs across all entries, saturating at math.MaxInt
	Saved        int              // Number of persisted expansions
}

// Variants returns every generated variant in entry order.
func (r *GenerateResult) Variants() []string {
	var out []string
	for _, e := range r.Entries {
		out = append(out, e.Variants...)
	}
	return out
}

// Export converts the result for the formatter package.
func (r *GenerateResult) Export(source string) *formatter.Export {
	export := &formatter.Export{Kind: r.Kind, Source: source}
	for _, e := range r.Entries {
		export.Add(e.Index, e.Variants...)
	}
	return export
}

// Generator expands template text with optional storage on either side.
type Generator struct {
	files      TextFileSource
	expansions ExpansionSink
}

// NewGenerator creates a Generator. Either dependency may be nil when the operations that need it are not used.
func NewGenerator(files TextFileSource, expansions ExpansionSink) *Generator {
	return &Generator{
		files:      files,
		expansions: expansions,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (g *Generator) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Generate expands the stored text file of a profile.
func (g *Generator) Generate(ctx context.Context, progress chan<- ProgressUpdate, opts GenerateOpts) (*GenerateResult, error) {
	if g.files == nil {
		return nil, fmt.Errorf("%w: text file store not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Save && g.expansions == nil {
		return nil, fmt.Errorf("%w: expansion store not initialized", shared.ErrServiceUnavailable)
	}
	if _, err := models.ParseKind(string(opts.Kind)); err != nil {
		return nil, err
	}

	g.sendProgress(progress, loadingUpdate(opts.Profile, opts.Kind.String()))

	file, err := g.files.GetByProfile(opts.Profile, opts.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s for %s: %w", opts.Kind, opts.Profile, err)
	}

	result, err := g.ExpandText(ctx, progress, file.Content(), opts.Kind, opts.Count, opts.Seed)
	if err != nil {
		return nil, err
	}
	result.TextFile = file

	if !opts.Save {
		return result, nil
	}

	total := len(result.Variants())
	for _, entry := range result.Entries {
		for _, v := range entry.Variants {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			e := models.NewExpansion(0, file.ID(), entry.Index, v, opts.Seed)
			if err := g.expansions.Create(e); err != nil {
				return result, fmt.Errorf("failed to save expansion of entry %d: %w", entry.Index, err)
			}
			result.Saved++
			g.sendProgress(progress, persistUpdate(result.Saved, total))
		}
	}

	return result, nil
}

// ExpandText splits text into entries of the given kind and generates count variants of each.
func (g *Generator) ExpandText(ctx context.Context, progress chan<- ProgressUpdate, text string, kind models.Kind, count int, seed uint64) (*GenerateResult, error) {
	result, err := g.ExpandDelimited(ctx, progress, text, kind.Delimiter(), count, seed)
	if err != nil {
		return nil, err
	}
	result.Kind = kind
	return result, nil
}

// ExpandDelimited is [Generator.ExpandText] with an explicit entry delimiter.
//
// Cancellation is checked between entries.
func (g *Generator) ExpandDelimited(ctx context.Context, progress chan<- ProgressUpdate, text, delimiter string, count int, seed uint64) (*GenerateResult, error) {
	if count == 0 {
		count = 1
	}

	templates, err := spinner.ParseBatch(text, delimiter)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Entries: make([]EntryResult, 0, len(templates))}
	for _, t := range templates {
		result.Combinations = saturatingAdd(result.Combinations, t.Combinations())
	}
	g.sendProgress(progress, parsedUpdate(len(templates), result.Combinations))

	src := spinner.SourceFor(seed)
	for i, t := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		variants, err := t.Variants(count, src)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		entry := EntryResult{Index: i, Template: t.String(), Variants: variants}
		result.Entries = append(result.Entries, entry)
		g.sendProgress(progress, expandEntryUpdate(i+1, len(templates), entry))
	}

	return result, nil
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
