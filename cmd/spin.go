package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/desertthunder/ytspin/internal/formatter"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
	"github.com/desertthunder/ytspin/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SpinExpand expands a single template, treating the whole text as one entry.
func (r *Runner) SpinExpand(ctx context.Context, cmd *cli.Command) error {
	text, _, err := r.readText(cmd)
	if err != nil {
		return err
	}

	count := r.count(cmd)
	if count < 0 {
		return fmt.Errorf("%w: count must not be negative", shared.ErrInvalidArgument)
	}
	if count == 0 {
		count = 1
	}

	tpl := spinner.Parse(text)
	variants, err := tpl.Variants(count, spinner.SourceFor(r.seed(cmd)))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"results": variants}, false)
	}
	for _, v := range variants {
		if err := r.writePlain("%s\n", v); err != nil {
			return err
		}
	}
	return nil
}

// SpinBatch expands every entry of a titles or descriptions text.
func (r *Runner) SpinBatch(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	text, source, err := r.readText(cmd)
	if err != nil {
		return err
	}

	var result *tasks.GenerateResult
	if delim := cmd.String("delimiter"); delim != "" {
		result, err = r.engine.ExpandDelimited(ctx, nil, text, delim, r.count(cmd), r.seed(cmd))
		if result != nil {
			result.Kind = kind
		}
	} else {
		result, err = r.engine.ExpandText(ctx, nil, text, kind, r.count(cmd), r.seed(cmd))
	}
	if err != nil {
		return err
	}

	r.logger.Debug("expanded batch", "entries", len(result.Entries), "combinations", result.Combinations)
	return formatter.Write(result.Export(source), format, cmd.String("output"), r.output)
}

type inspectSegment struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

type inspectResult struct {
	Template     string           `json:"template"`
	Segments     []inspectSegment `json:"segments"`
	Choices      int              `json:"choices"`
	Combinations int              `json:"combinations"`
}

func inspect(text string) inspectResult {
	tpl := spinner.Parse(text)
	out := inspectResult{
		Template:     tpl.String(),
		Segments:     make([]inspectSegment, 0, len(tpl.Segments)),
		Choices:      tpl.Choices(),
		Combinations: tpl.Combinations(),
	}
	for _, seg := range tpl.Segments {
		out.Segments = append(out.Segments, inspectSegment{Kind: seg.Kind.String(), Text: seg.Text, Options: seg.Options})
	}
	return out
}

// SpinInspect prints how a template parses.
func (r *Runner) SpinInspect(ctx context.Context, cmd *cli.Command) error {
	text, _, err := r.readText(cmd)
	if err != nil {
		return err
	}

	result := inspect(text)
	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Template")
	for i, seg := range result.Segments {
		var err error
		switch seg.Kind {
		case spinner.Choice.String():
			err = r.writePlain("%3d  choice   %q\n", i, seg.Options)
		default:
			err = r.writePlain("%3d  literal  %q\n", i, seg.Text)
		}
		if err != nil {
			return err
		}
	}
	return r.writePlainln("%d groups, %d combinations", result.Choices, result.Combinations)
}

// SpinFiles expands every file under --root matching --glob.
func (r *Runner) SpinFiles(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	root := cmd.String("root")
	paths, err := tasks.LoadFiles(root, cmd.String("glob"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		r.logger.Warn("no files matched", "root", root, "glob", cmd.String("glob"))
		return nil
	}

	workers := int(cmd.Int("workers"))
	if workers == 0 {
		workers = r.config.Spin.Workers
	}

	progress, wait := r.progress(func(u tasks.ProgressUpdate) {
		r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
	})
	result, err := r.engine.ExpandFiles(ctx, progress, paths, tasks.FilesOpts{
		Kind:      kind,
		Seed:      r.seed(cmd),
		Workers:   workers,
		RateLimit: r.config.Spin.FilesPerSecond,
	})
	wait()
	if err != nil {
		return err
	}

	export := &formatter.Export{Kind: kind, Source: root}
	for i, f := range result.Files {
		if f.Err != nil {
			r.logger.Error("failed to expand file", "path", f.Path, "error", f.Err)
			continue
		}
		export.Add(i, f.Variants...)
		if rel, err := filepath.Rel(root, f.Path); err == nil {
			r.logger.Debug("expanded file", "path", rel, "variants", len(f.Variants))
		}
	}

	if err := formatter.Write(export, format, cmd.String("output"), r.output); err != nil {
		return err
	}
	r.logger.Info("expanded files", "succeeded", result.Succeeded, "failed", result.Failed)

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, len(result.Files))
	}
	return nil
}
