// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func textArgs() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "text"}}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read template text from a file (- for stdin)",
	}
}

func seedFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "Seed for repeatable output (0 for random)",
	}
}

func countFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   "Variants to generate per entry",
		Value:   1,
	}
}

func kindFlag(value string) cli.Flag {
	return &cli.StringFlag{
		Name:    "kind",
		Aliases: []string{"k"},
		Usage:   "Text kind: titles or descriptions",
		Value:   value,
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text, json, csv or markdown",
			Value: "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "profile",
		Aliases:  []string{"p"},
		Usage:    "Profile name",
		Required: true,
	}
}

// spinCommand expands template text without touching storage.
func spinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "spin",
		Usage: "Expand {a|b|c} templates",
		Commands: []*cli.Command{
			{
				Name:      "expand",
				Usage:     "Expand a single template",
				Arguments: textArgs(),
				Flags: []cli.Flag{
					fileFlag(),
					countFlag(),
					seedFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpinExpand,
			},
			{
				Name:      "batch",
				Usage:     "Expand every entry of a titles or descriptions text",
				Arguments: textArgs(),
				Flags: append([]cli.Flag{
					fileFlag(),
					kindFlag("titles"),
					&cli.StringFlag{
						Name:    "delimiter",
						Aliases: []string{"d"},
						Usage:   "Entry delimiter, overriding the kind's",
					},
					countFlag(),
					seedFlag(),
				}, formatFlags()...),
				Action: r.SpinBatch,
			},
			{
				Name:      "inspect",
				Usage:     "Show the parsed segments, groups and combination count",
				Arguments: textArgs(),
				Flags: []cli.Flag{
					fileFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SpinInspect,
			},
			{
				Name:  "files",
				Usage: "Expand every template file under a directory",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Usage: "Directory to search",
						Value: ".",
					},
					&cli.StringFlag{
						Name:    "glob",
						Aliases: []string{"g"},
						Usage:   "Doublestar pattern, relative to root",
						Value:   "**/*.txt",
					},
					kindFlag("titles"),
					seedFlag(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
					},
				}, formatFlags()...),
				Action: r.SpinFiles,
			},
		},
	}
}

// templatesCommand manages the stored profile text files.
func templatesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"tpl"},
		Usage:   "Manage stored profile titles and descriptions",
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Store a profile's text file, replacing any existing one",
				Arguments: textArgs(),
				Flags:     []cli.Flag{profileFlag(), kindFlag("titles"), fileFlag()},
				Action:    r.TemplatesSave,
			},
			{
				Name:   "show",
				Usage:  "Print a profile's stored text file",
				Flags:  []cli.Flag{profileFlag(), kindFlag("titles")},
				Action: r.TemplatesShow,
			},
			{
				Name:  "list",
				Usage: "List stored text files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "profile",
						Aliases: []string{"p"},
						Usage:   "Only this profile",
					},
					&cli.StringFlag{
						Name:    "kind",
						Aliases: []string{"k"},
						Usage:   "Only this kind",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TemplatesList,
			},
			{
				Name:   "delete",
				Usage:  "Delete a profile's text file and its saved expansions",
				Flags:  []cli.Flag{profileFlag(), kindFlag("titles")},
				Action: r.TemplatesDelete,
			},
			{
				Name:  "generate",
				Usage: "Expand a profile's stored text file",
				Flags: append([]cli.Flag{
					profileFlag(),
					kindFlag("titles"),
					countFlag(),
					seedFlag(),
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Persist the generated variants",
					},
				}, formatFlags()...),
				Action: r.TemplatesGenerate,
			},
			{
				Name:  "samples",
				Usage: "Append sample entries to a profile's text file",
				Flags: []cli.Flag{
					profileFlag(),
					kindFlag("titles"),
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Sample titles to add (descriptions always add one)",
						Value:   5,
					},
					seedFlag(),
				},
				Action: r.TemplatesSamples,
			},
		},
	}
}

// panelCommand syncs text files with the admin panel backend.
func panelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "panel",
		Usage: "Sync text files with the admin panel",
		Commands: []*cli.Command{
			{
				Name:   "pull",
				Usage:  "Fetch a profile's text file from the panel and store it locally",
				Flags:  []cli.Flag{profileFlag(), kindFlag("titles")},
				Action: r.PanelPull,
			},
			{
				Name:   "push",
				Usage:  "Send a locally stored text file to the panel",
				Flags:  []cli.Flag{profileFlag(), kindFlag("titles")},
				Action: r.PanelPush,
			},
			{
				Name:   "status",
				Usage:  "Check that the panel is reachable (calls /health)",
				Action: r.PanelStatus,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config file from the default template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the new config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "status",
				Usage:  "Show applied and pending migrations",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// serveCommand runs the HTTP service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the text file and spin endpoints over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// watchCommand re-expands a template file whenever it changes.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Re-expand a template file every time it is saved",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Template file to watch",
				Required: true,
			},
			kindFlag("titles"),
			countFlag(),
			seedFlag(),
		},
		Action: r.Watch,
	}
}

// tuiCommand returns the top-level TUI command for interactive previews.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Preview expansions interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Template file to preview",
			},
			&cli.StringFlag{
				Name:    "profile",
				Aliases: []string{"p"},
				Usage:   "Preview a stored profile's titles and descriptions",
			},
			kindFlag("titles"),
			countFlag(),
			seedFlag(),
		},
		Action: r.TUI,
	}
}
