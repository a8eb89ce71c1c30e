package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive preview of a template file or a stored profile.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	texts, source, err := r.previewTexts(cmd, kind)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/ytspin-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, texts, kind, ui.Options{
		Count:  r.count(cmd),
		Seed:   r.seed(cmd),
		Source: source,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// previewTexts loads the --file text as the given kind, or both kinds of a stored --profile.
func (r *Runner) previewTexts(cmd *cli.Command, kind models.Kind) (map[models.Kind]string, string, error) {
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return map[models.Kind]string{kind: string(data)}, path, nil
	}

	profile := cmd.String("profile")
	if profile == "" {
		return nil, "", fmt.Errorf("%w: pass --file or --profile", shared.ErrMissingArgument)
	}

	repo, err := r.textFiles()
	if err != nil {
		return nil, "", err
	}

	texts := make(map[models.Kind]string, len(models.Kinds))
	for _, k := range models.Kinds {
		file, err := repo.GetByProfile(profile, k)
		if errors.Is(err, shared.ErrTextFileNotFound) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		texts[k] = file.Content()
	}
	if len(texts) == 0 {
		return nil, "", fmt.Errorf("%s: %w", profile, shared.ErrTextFileNotFound)
	}
	return texts, profile, nil
}
