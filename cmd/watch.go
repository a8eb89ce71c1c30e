package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/watcher"
	"github.com/urfave/cli/v3"
)

// Watch prints fresh expansions of a template file every time it is saved.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	kind, err := models.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	w, err := watcher.New(cmd.String("file"), watcher.Config{}, r.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	count, seed := r.count(cmd), r.seed(cmd)
	render := func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			r.logger.Error("failed to read template", "path", path, "error", err)
			return
		}

		result, err := r.engine.ExpandText(ctx, nil, string(data), kind, count, seed)
		if err != nil {
			r.logger.Error("failed to expand template", "path", path, "error", err)
			return
		}

		r.writePlainHeader(time.Now().Format("15:04:05") + "  " + path)
		for _, v := range result.Variants() {
			r.writePlain("%s%s", v, kind.Joiner())
		}
		r.writePlain("\n")
	}

	render(w.Path())
	r.logger.Info("watching for changes", "path", w.Path(), "kind", kind)
	return w.Run(ctx, render)
}
