package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/urfave/cli/v3"
)

// PanelPull copies a profile's text file from the panel into the local store.
func (r *Runner) PanelPull(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}
	profile := cmd.String("profile")
	panel := r.panelClient()

	r.logger.Info("fetching text file", "panel", panel.BaseURL(), "profile", profile, "kind", kind)
	content, err := panel.GetTextFile(ctx, profile, kind)
	if err != nil {
		return err
	}

	repo, err := r.textFiles()
	if err != nil {
		return err
	}
	file, err := repo.Upsert(profile, kind, content)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Pulled %d %s for %s\n", file.Count(), kind, profile)
}

// PanelPush sends a locally stored text file to the panel.
func (r *Runner) PanelPush(ctx context.Context, cmd *cli.Command) error {
	file, _, err := r.profileFile(cmd)
	if err != nil {
		return err
	}
	panel := r.panelClient()

	r.logger.Info("saving text file", "panel", panel.BaseURL(), "profile", file.Profile(), "kind", file.Kind())
	if err := panel.SaveTextFile(ctx, file.Profile(), file.Kind(), file.Content()); err != nil {
		return err
	}

	return r.writePlain("✓ Pushed %d %s for %s\n", file.Count(), file.Kind(), file.Profile())
}

// PanelStatus checks the panel's health endpoint.
func (r *Runner) PanelStatus(ctx context.Context, cmd *cli.Command) error {
	panel := r.panelClient()

	resp, err := panel.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrServiceUnavailable, panel.BaseURL(), err)
	}

	if resp.IsJSON {
		if err := r.writeJSON(resp.JSONData, true); err != nil {
			return err
		}
	} else {
		r.writePlain("%s\n", resp.Body)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: /health returned %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	r.logger.Info("panel reachable", "url", panel.BaseURL(), "status", resp.StatusCode)
	return nil
}
