package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/ytspin/internal/formatter"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/repositories"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
	"github.com/desertthunder/ytspin/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TemplatesSave stores a profile's titles or descriptions.
func (r *Runner) TemplatesSave(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	text, _, err := r.readText(cmd)
	if err != nil {
		return err
	}

	repo, err := r.textFiles()
	if err != nil {
		return err
	}

	file, err := repo.Upsert(cmd.String("profile"), kind, text)
	if err != nil {
		return err
	}

	entries := file.Count()
	r.logger.Info("saved text file", "profile", file.Profile(), "kind", kind, "entries", entries)
	return r.writePlain("✓ Saved %d %s for %s\n", entries, kind, file.Profile())
}

// TemplatesShow prints a profile's stored text.
func (r *Runner) TemplatesShow(ctx context.Context, cmd *cli.Command) error {
	file, _, err := r.profileFile(cmd)
	if err != nil {
		return err
	}

	content := file.Content()
	if content == "" {
		return nil
	}
	if content[len(content)-1] != '\n' {
		content += "\n"
	}
	return r.writePlain("%s", content)
}

type textFileSummary struct {
	ID           string      `json:"id"`
	Profile      string      `json:"profile"`
	Kind         models.Kind `json:"kind"`
	Entries      int         `json:"entries"`
	Combinations int         `json:"combinations"`
	UpdatedAt    string      `json:"updated_at"`
}

// TemplatesList lists stored text files, optionally filtered by profile and kind.
func (r *Runner) TemplatesList(ctx context.Context, cmd *cli.Command) error {
	criteria := map[string]any{}
	if p := cmd.String("profile"); p != "" {
		criteria["profile"] = p
	}
	if k := cmd.String("kind"); k != "" {
		kind, err := models.ParseKind(k)
		if err != nil {
			return err
		}
		criteria["kind"] = kind
	}

	repo, err := r.textFiles()
	if err != nil {
		return err
	}
	files, err := repo.List(criteria)
	if err != nil {
		return err
	}

	summaries := make([]textFileSummary, 0, len(files))
	for _, f := range files {
		s := textFileSummary{
			ID:        f.ID(),
			Profile:   f.Profile(),
			Kind:      f.Kind(),
			Entries:   f.Count(),
			UpdatedAt: f.UpdatedAt().Format("2006-01-02 15:04"),
		}
		if tpls, err := spinner.ParseBatch(f.Content(), f.Kind().Delimiter()); err == nil {
			for _, t := range tpls {
				s.Combinations += t.Combinations()
			}
		}
		summaries = append(summaries, s)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, true)
	}
	if len(summaries) == 0 {
		return r.writePlain("No text files stored\n")
	}

	r.writePlainHeader("Text Files")
	for _, s := range summaries {
		r.writePlain("%-24s %-13s %4d entries %8d combinations  %s\n", s.Profile, s.Kind, s.Entries, s.Combinations, s.UpdatedAt)
	}
	return nil
}

// TemplatesDelete removes a profile's text file along with its saved expansions.
func (r *Runner) TemplatesDelete(ctx context.Context, cmd *cli.Command) error {
	file, repo, err := r.profileFile(cmd)
	if err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	removed, err := repositories.NewExpansionRepository(db).DeleteByTextFile(file.ID())
	if err != nil {
		return err
	}
	if err := repo.Delete(file.ID()); err != nil {
		return err
	}

	r.logger.Info("deleted text file", "profile", file.Profile(), "kind", file.Kind(), "expansions", removed)
	return r.writePlain("✓ Deleted %s for %s (%d saved expansions)\n", file.Kind(), file.Profile(), removed)
}

// TemplatesGenerate expands a stored text file and optionally saves the variants.
func (r *Runner) TemplatesGenerate(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	engine, err := r.storeEngine()
	if err != nil {
		return err
	}

	progress, wait := r.progress(func(u tasks.ProgressUpdate) {
		r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)
	})
	result, err := engine.Generate(ctx, progress, tasks.GenerateOpts{
		Profile: cmd.String("profile"),
		Kind:    kind,
		Count:   r.count(cmd),
		Seed:    r.seed(cmd),
		Save:    cmd.Bool("save"),
	})
	wait()
	if err != nil {
		return err
	}

	if result.Saved > 0 {
		r.logger.Info("saved expansions", "count", result.Saved)
	}
	return formatter.Write(result.Export(cmd.String("profile")), format, cmd.String("output"), r.output)
}

// TemplatesSamples appends the editor's sample entries to a stored text file, creating it if needed.
func (r *Runner) TemplatesSamples(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	profile := cmd.String("profile")

	repo, err := r.textFiles()
	if err != nil {
		return err
	}

	existing := ""
	file, err := repo.GetByProfile(profile, kind)
	switch {
	case err == nil:
		existing = file.Content()
	case !errors.Is(err, shared.ErrTextFileNotFound):
		return err
	}

	n := int(cmd.Int("count"))
	if kind == models.Descriptions {
		n = 1
	}
	n = min(n, len(models.Samples(kind)))

	content, err := models.AppendSamples(kind, existing, n, spinner.SourceFor(r.seed(cmd)))
	if err != nil {
		return err
	}
	if _, err := repo.Upsert(profile, kind, content); err != nil {
		return err
	}

	return r.writePlain("✓ Added %d sample %s to %s\n", n, kind, profile)
}

// profileFile loads the text file named by --profile and --kind.
func (r *Runner) profileFile(cmd *cli.Command) (*models.TextFile, *repositories.TextFileRepository, error) {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return nil, nil, err
	}

	repo, err := r.textFiles()
	if err != nil {
		return nil, nil, err
	}

	profile := cmd.String("profile")
	file, err := repo.GetByProfile(profile, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", profile, kind, err)
	}
	return file, repo, nil
}
