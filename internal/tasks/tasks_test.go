package tasks

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

type mockFiles struct {
	files map[string]*models.TextFile
	err   error
}

func (m *mockFiles) GetByProfile(profile string, kind models.Kind) (*models.TextFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if f, ok := m.files[profile+"|"+string(kind)]; ok {
		return f, nil
	}
	return nil, shared.ErrTextFileNotFound
}

func newMockFiles(profile string, kind models.Kind, content string) *mockFiles {
	f := models.NewTextFile(1, profile, kind, content)
	f.SetID("file-1")
	return &mockFiles{files: map[string]*models.TextFile{profile + "|" + string(kind): f}}
}

type mockSink struct {
	saved   []*models.Expansion
	failAt  int
	failErr error
}

func (m *mockSink) Create(e *models.Expansion) error {
	if m.failErr != nil && len(m.saved) == m.failAt {
		return m.failErr
	}
	m.saved = append(m.saved, e)
	return nil
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	close(ch)
	var out []ProgressUpdate
	for u := range ch {
		out = append(out, u)
	}
	return out
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("expands every entry", func(t *testing.T) {
		files := newMockFiles("Tech", models.Titles, "Top {5|10} Tips\n\nPlain title\n")
		g := NewGenerator(files, nil)

		result, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles, Count: 3, Seed: 7})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(result.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(result.Entries))
		}
		if result.Combinations != 3 {
			t.Errorf("expected 3 combinations, got %d", result.Combinations)
		}
		for _, v := range result.Entries[0].Variants {
			if v != "Top 5 Tips" && v != "Top 10 Tips" {
				t.Errorf("unexpected variant %q", v)
			}
		}
		if !reflect.DeepEqual(result.Entries[1].Variants, []string{"Plain title", "Plain title", "Plain title"}) {
			t.Errorf("unexpected variants %v", result.Entries[1].Variants)
		}
		if result.TextFile == nil || result.TextFile.ID() != "file-1" {
			t.Error("expected source text file on result")
		}
		if result.Saved != 0 {
			t.Errorf("expected nothing saved, got %d", result.Saved)
		}
	})

	t.Run("same seed same output", func(t *testing.T) {
		files := newMockFiles("Tech", models.Titles, "{a|b|c|d} {e|f|g|h}\n{1|2|3}")
		g := NewGenerator(files, nil)
		opts := GenerateOpts{Profile: "Tech", Kind: models.Titles, Count: 5, Seed: 42}

		first, err := g.Generate(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		second, err := g.Generate(ctx, nil, opts)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !reflect.DeepEqual(first.Variants(), second.Variants()) {
			t.Errorf("seeded runs differ: %v vs %v", first.Variants(), second.Variants())
		}
	})

	t.Run("count zero means one", func(t *testing.T) {
		g := NewGenerator(newMockFiles("Tech", models.Titles, "x\ny"), nil)
		result, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if got := result.Variants(); !reflect.DeepEqual(got, []string{"x", "y"}) {
			t.Errorf("unexpected variants %v", got)
		}
	})

	t.Run("descriptions split on marker", func(t *testing.T) {
		g := NewGenerator(newMockFiles("Tech", models.Descriptions, "First {x|x}\n---\nSecond"), nil)
		result, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Descriptions})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if got := result.Variants(); !reflect.DeepEqual(got, []string{"First x", "Second"}) {
			t.Errorf("unexpected variants %v", got)
		}
	})

	t.Run("saves expansions", func(t *testing.T) {
		sink := &mockSink{}
		g := NewGenerator(newMockFiles("Tech", models.Titles, "a\nb"), sink)
		progress := make(chan ProgressUpdate, 32)

		result, err := g.Generate(ctx, progress, GenerateOpts{Profile: "Tech", Kind: models.Titles, Count: 2, Seed: 9, Save: true})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if result.Saved != 4 || len(sink.saved) != 4 {
			t.Fatalf("expected 4 saved, got %d (%d)", result.Saved, len(sink.saved))
		}
		e := sink.saved[2]
		if e.TextFileID() != "file-1" || e.EntryIndex() != 1 || e.Content() != "b" || e.Seed() != 9 {
			t.Errorf("unexpected expansion %+v", e)
		}

		phases := map[Phase]int{}
		for _, u := range drain(progress) {
			phases[u.Phase]++
		}
		if phases[Parse] != 2 || phases[Expand] != 2 || phases[Persist] != 4 {
			t.Errorf("unexpected progress phases %v", phases)
		}
	})

	t.Run("save failure", func(t *testing.T) {
		sink := &mockSink{failAt: 1, failErr: errors.New("disk full")}
		g := NewGenerator(newMockFiles("Tech", models.Titles, "a\nb"), sink)

		result, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles, Save: true})
		if err == nil {
			t.Fatal("expected error")
		}
		if result == nil || result.Saved != 1 {
			t.Errorf("expected partial result with 1 saved, got %+v", result)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		g := NewGenerator(&mockFiles{}, nil)
		_, err := g.Generate(ctx, nil, GenerateOpts{Profile: "nobody", Kind: models.Titles})
		if !errors.Is(err, shared.ErrTextFileNotFound) {
			t.Errorf("expected ErrTextFileNotFound, got %v", err)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		g := NewGenerator(&mockFiles{}, nil)
		_, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: "tags"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative count", func(t *testing.T) {
		g := NewGenerator(newMockFiles("Tech", models.Titles, "a"), nil)
		_, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles, Count: -1})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("missing dependencies", func(t *testing.T) {
		if _, err := NewGenerator(nil, nil).Generate(ctx, nil, GenerateOpts{Kind: models.Titles}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
		g := NewGenerator(newMockFiles("Tech", models.Titles, "a"), nil)
		if _, err := g.Generate(ctx, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles, Save: true}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		g := NewGenerator(newMockFiles("Tech", models.Titles, "a\nb"), nil)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := g.Generate(canceled, nil, GenerateOpts{Profile: "Tech", Kind: models.Titles}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestGenerator_ExpandText(t *testing.T) {
	g := NewGenerator(nil, nil)

	t.Run("malformed braces are literal", func(t *testing.T) {
		result, err := g.ExpandText(context.Background(), nil, "Hello {world\nstray }", models.Titles, 1, 1)
		if err != nil {
			t.Fatalf("ExpandText failed: %v", err)
		}
		if got := result.Variants(); !reflect.DeepEqual(got, []string{"Hello {world", "stray }"}) {
			t.Errorf("unexpected variants %v", got)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		result, err := g.ExpandText(context.Background(), nil, "  \n\n", models.Titles, 2, 0)
		if err != nil {
			t.Fatalf("ExpandText failed: %v", err)
		}
		if len(result.Entries) != 0 || result.Combinations != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})

	t.Run("export keeps entry indexes", func(t *testing.T) {
		result, err := g.ExpandText(context.Background(), nil, "a\nb", models.Titles, 2, 3)
		if err != nil {
			t.Fatalf("ExpandText failed: %v", err)
		}
		export := result.Export("inline")
		if len(export.Records) != 4 || export.Records[3].Entry != 1 || export.Records[3].Index != 3 {
			t.Errorf("unexpected export %+v", export)
		}
		if export.Source != "inline" || export.Kind != models.Titles {
			t.Errorf("unexpected export metadata %+v", export)
		}
	})

	t.Run("explicit delimiter", func(t *testing.T) {
		result, err := g.ExpandDelimited(context.Background(), nil, "a;;b\n;;\nc", ";;", 1, 0)
		if err != nil {
			t.Fatalf("ExpandDelimited failed: %v", err)
		}
		if got := result.Variants(); !reflect.DeepEqual(got, []string{"a;;b", "c"}) {
			t.Errorf("unexpected variants %v", got)
		}
		if result.Kind != "" {
			t.Errorf("expected no kind, got %s", result.Kind)
		}
	})

	t.Run("empty delimiter", func(t *testing.T) {
		if _, err := g.ExpandDelimited(context.Background(), nil, "a", "", 1, 0); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("non-blocking progress", func(t *testing.T) {
		progress := make(chan ProgressUpdate)
		text := ""
		for i := range 10 {
			text += fmt.Sprintf("entry {%d|x}\n", i)
		}
		if _, err := g.ExpandText(context.Background(), progress, text, models.Titles, 1, 5); err != nil {
			t.Fatalf("ExpandText should not block on an unread channel: %v", err)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{Parse: "parse", Expand: "expand", Persist: "persist", Phase(99): ""}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
