package spinner

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/ytspin/internal/shared"
	th "github.com/desertthunder/ytspin/internal/testing"
)

func TestParse(t *testing.T) {
	t.Run("plain text is one literal", func(t *testing.T) {
		tpl := Parse("Amazing Tech Discovery!")
		want := []Segment{{Kind: Literal, Text: "Amazing Tech Discovery!"}}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("empty input has no segments", func(t *testing.T) {
		if tpl := Parse(""); len(tpl.Segments) != 0 {
			t.Errorf("expected no segments, got %+v", tpl.Segments)
		}
	})

	t.Run("single group", func(t *testing.T) {
		tpl := Parse("Top {5|10|15} Tips")
		want := []Segment{
			{Kind: Literal, Text: "Top "},
			{Kind: Choice, Options: []string{"5", "10", "15"}},
			{Kind: Literal, Text: " Tips"},
		}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("options keep whitespace", func(t *testing.T) {
		tpl := Parse("{ a | b }")
		want := []string{" a ", " b "}
		if !reflect.DeepEqual(tpl.Segments[0].Options, want) {
			t.Errorf("expected %q, got %q", want, tpl.Segments[0].Options)
		}
	})

	t.Run("empty group has one empty option", func(t *testing.T) {
		tpl := Parse("x{}y")
		if len(tpl.Segments) != 3 {
			t.Fatalf("expected 3 segments, got %d", len(tpl.Segments))
		}
		if !reflect.DeepEqual(tpl.Segments[1].Options, []string{""}) {
			t.Errorf("expected single empty option, got %q", tpl.Segments[1].Options)
		}
	})

	t.Run("empty options between pipes", func(t *testing.T) {
		tpl := Parse("{a||}")
		if !reflect.DeepEqual(tpl.Segments[0].Options, []string{"a", "", ""}) {
			t.Errorf("unexpected options %q", tpl.Segments[0].Options)
		}
	})

	t.Run("unterminated group is literal", func(t *testing.T) {
		tpl := Parse("abc {unterminated")
		want := []Segment{{Kind: Literal, Text: "abc {unterminated"}}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("stray closer is literal", func(t *testing.T) {
		tpl := Parse("a } b {c|d}")
		want := []Segment{
			{Kind: Literal, Text: "a } b "},
			{Kind: Choice, Options: []string{"c", "d"}},
		}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("nested opener degrades only the outer group", func(t *testing.T) {
		tpl := Parse("{a|{b|c}}")
		want := []Segment{
			{Kind: Literal, Text: "{a|"},
			{Kind: Choice, Options: []string{"b", "c"}},
			{Kind: Literal, Text: "}"},
		}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("repeated openers", func(t *testing.T) {
		tpl := Parse("{{{a}")
		want := []Segment{
			{Kind: Literal, Text: "{{"},
			{Kind: Choice, Options: []string{"a"}},
		}
		if !reflect.DeepEqual(tpl.Segments, want) {
			t.Errorf("expected %+v, got %+v", want, tpl.Segments)
		}
	})

	t.Run("groups spanning lines", func(t *testing.T) {
		tpl := Parse("line one {a\n|b}\nline two")
		if tpl.Choices() != 1 {
			t.Fatalf("expected 1 group, got %d", tpl.Choices())
		}
		if !reflect.DeepEqual(tpl.Segments[1].Options, []string{"a\n", "b"}) {
			t.Errorf("unexpected options %q", tpl.Segments[1].Options)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		input := "Why {Everyone|Most People} Are Wrong {about|on} {x"
		if !reflect.DeepEqual(Parse(input), Parse(input)) {
			t.Error("expected structurally equal templates")
		}
	})
}

func TestTemplateString(t *testing.T) {
	inputs := []string{
		"",
		"no groups at all\n",
		"The {Ultimate|Complete|Definitive} Guide to {topic|success|productivity}",
		"x{}y",
		"{a||}",
		"abc {unterminated",
		"a } b",
		"{a|{b|c}}",
		"{{{a}",
		"}{",
		"\\{escaped|not}",
		"🔥 {émoji|ünïcode} ✓",
		"Welcome!\n\n- {Key point 1|Important concept}\n#tags",
	}

	for _, input := range inputs {
		if got := Parse(input).String(); got != input {
			t.Errorf("round trip of %q produced %q", input, got)
		}
	}
}

func TestExpand(t *testing.T) {
	t.Run("multi-byte options are kept whole", func(t *testing.T) {
		got, err := Parse("🔥 {émoji|ünïcode} ✓").Expand(th.FixedSource(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "🔥 ünïcode ✓" {
			t.Errorf("expected %q, got %q", "🔥 ünïcode ✓", got)
		}
	})

	t.Run("text without braces is unchanged", func(t *testing.T) {
		for _, input := range []string{"", "plain", "multi\nline\n  text  "} {
			got, err := Parse(input).Expand(NewSource(7))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != input {
				t.Errorf("expected %q, got %q", input, got)
			}
		}
	})

	t.Run("deterministic for fixed draws", func(t *testing.T) {
		tpl := Parse("{Shocking|Surprising|Incredible} Results After {Using|Trying|Testing}")
		got, err := tpl.Expand(th.NewSequenceSource(2, 1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Incredible Results After Trying" {
			t.Errorf("unexpected expansion %q", got)
		}
	})

	t.Run("asks for each group's option count", func(t *testing.T) {
		src := th.NewSequenceSource(0)
		if _, err := Parse("{a|b}{c|d|e}{}").Expand(src); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(src.Asked, []int{2, 3, 1}) {
			t.Errorf("expected draws for [2 3 1], got %v", src.Asked)
		}
	})

	t.Run("single group yields one of its options", func(t *testing.T) {
		tpl := Parse("pre {a|b|c} post")
		allowed := map[string]bool{"pre a post": true, "pre b post": true, "pre c post": true}
		src := NewSource(42)
		for range 200 {
			got, err := tpl.Expand(src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !allowed[got] {
				t.Fatalf("unexpected expansion %q", got)
			}
		}
	})

	t.Run("empty group expands to nothing", func(t *testing.T) {
		src := NewSource(1)
		for range 10 {
			got, err := Expand(Parse("x{}y"), src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "xy" {
				t.Errorf("expected xy, got %q", got)
			}
		}
	})

	t.Run("malformed input expands to itself", func(t *testing.T) {
		got, err := Parse("abc {unterminated").Expand(NewSource(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "abc {unterminated" {
			t.Errorf("expected input back, got %q", got)
		}
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := Parse("{a|b}").Expand(nil)
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("out of range draw", func(t *testing.T) {
		for _, src := range []Source{th.FixedSource(-1), th.FixedSource(2)} {
			_, err := Parse("{a|b}").Expand(src)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		}
	})

	t.Run("uniform distribution", func(t *testing.T) {
		const trials = 30000
		tpl := Parse("{a|b|c|d|e}")
		counts := map[string]int{}
		src := NewSource(2024)
		for range trials {
			got, err := tpl.Expand(src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			counts[got]++
		}

		expected := float64(trials) / 5
		for _, opt := range []string{"a", "b", "c", "d", "e"} {
			if dev := math.Abs(float64(counts[opt])-expected) / expected; dev > 0.05 {
				t.Errorf("option %q chosen %d times, %.1f%% off uniform", opt, counts[opt], dev*100)
			}
		}
	})

	t.Run("never fails on arbitrary braces", func(t *testing.T) {
		alphabet := []string{"{", "}", "|", "a", " ", "\n"}
		src := NewSource(9)
		for range 500 {
			var b strings.Builder
			for range 12 {
				b.WriteString(alphabet[src.IntN(len(alphabet))])
			}
			input := b.String()
			tpl := Parse(input)
			if tpl.String() != input {
				t.Fatalf("round trip failed for %q", input)
			}
			if _, err := tpl.Expand(src); err != nil {
				t.Fatalf("unexpected error for %q: %v", input, err)
			}
		}
	})
}

func TestVariants(t *testing.T) {
	t.Run("returns n expansions", func(t *testing.T) {
		out, err := Parse("{a|b}").Variants(4, th.NewSequenceSource(0, 1, 1, 0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(out, []string{"a", "b", "b", "a"}) {
			t.Errorf("unexpected variants %q", out)
		}
	})

	t.Run("zero variants", func(t *testing.T) {
		out, err := Parse("{a|b}").Variants(0, NewSource(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("expected no variants, got %q", out)
		}
	})

	t.Run("negative count", func(t *testing.T) {
		out, err := Parse("{a|b}").Variants(-1, NewSource(1))
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if out != nil {
			t.Errorf("expected no partial results, got %q", out)
		}
	})

	t.Run("bad draw returns no partial results", func(t *testing.T) {
		out, err := Parse("{a|b}").Variants(3, th.FixedSource(5))
		if err == nil || out != nil {
			t.Errorf("expected error and nil results, got %q, %v", out, err)
		}
	})
}

func TestCombinations(t *testing.T) {
	tests := []struct {
		input  string
		groups int
		want   int
	}{
		{"plain", 0, 1},
		{"{a|b}", 1, 2},
		{"Top {5|10|15} {Tips|Secrets|Tricks}", 2, 9},
		{"x{}y", 1, 1},
		{"{a|{b|c}}", 1, 2},
	}

	for _, tt := range tests {
		tpl := Parse(tt.input)
		if got := tpl.Choices(); got != tt.groups {
			t.Errorf("%q: expected %d groups, got %d", tt.input, tt.groups, got)
		}
		if got := tpl.Combinations(); got != tt.want {
			t.Errorf("%q: expected %d combinations, got %d", tt.input, tt.want, got)
		}
	}

	t.Run("saturates", func(t *testing.T) {
		input := strings.Repeat("{a|b|c|d|e|f|g|h|i|j}", 40)
		if got := Parse(input).Combinations(); got != math.MaxInt {
			t.Errorf("expected MaxInt, got %d", got)
		}
	})
}

func TestSources(t *testing.T) {
	t.Run("seeded sources repeat", func(t *testing.T) {
		tpl := Parse("{a|b|c|d}{e|f|g}{h|i}")
		first, _ := tpl.Variants(20, NewSource(11))
		second, _ := tpl.Variants(20, NewSource(11))
		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical variants for identical seeds")
		}
	})

	t.Run("SourceFor", func(t *testing.T) {
		if _, ok := SourceFor(0).(globalSource); !ok {
			t.Error("expected global source for zero seed")
		}
		if SourceFor(5).IntN(3) != NewSource(5).IntN(3) {
			t.Error("expected seeded source for non-zero seed")
		}
	})

	t.Run("locked source is safe to share", func(t *testing.T) {
		src := NewLockedSource(NewSource(3))
		tpl := Parse("{a|b|c}")

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := tpl.Variants(100, src); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("default source", func(t *testing.T) {
		got, err := Parse("{only}").Expand(DefaultSource())
		if err != nil || got != "only" {
			t.Errorf("expected only, got %q, %v", got, err)
		}
	})
}
