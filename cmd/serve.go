package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytspin/internal/repositories"
	"github.com/desertthunder/ytspin/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP service until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.config.Server
	if host := cmd.String("host"); host != "" {
		config.Host = host
	}
	if port := int(cmd.Int("port")); port != 0 {
		config.Port = port
	}

	repo, err := r.textFiles()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(config, repositories.NewTextStoreAdapter(repo), r.logger)
	return srv.ListenAndServe(ctx)
}
