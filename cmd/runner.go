package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspin/internal/repositories"
	"github.com/desertthunder/ytspin/internal/services"
	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	db         *sql.DB
	panel      *services.PanelClient
	engine     *tasks.Generator
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	DB         *sql.DB // Optional pre-opened database; otherwise opened on first use from config
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		db:         opts.DB,
		engine:     tasks.NewGenerator(nil, nil),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		spinCommand, templatesCommand, panelCommand, setupCommand, serveCommand, watchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads configuration and applies environment and log level overrides ahead of any action.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		r.configPath = path
	}

	// the default config.toml is optional; an explicit --config path is not
	config, err := shared.LoadConfig(r.configPath)
	switch {
	case err == nil:
		r.config = config
		r.logger.Debug("loaded config", "path", r.configPath)
	case errors.Is(err, shared.ErrMissingConfig) && !cmd.IsSet("config"):
		r.logger.Debug("no config file, using defaults", "path", r.configPath)
	default:
		return ctx, err
	}

	if err := shared.ApplyEnv(r.config); err != nil {
		return ctx, err
	}
	if err := shared.SetLogLevelName(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// After closes the database if a command opened it.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the runner's logger, e.g. to move output away from a full-screen UI.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// database opens, configures and migrates the configured database on first use.
func (r *Runner) database() (*sql.DB, error) {
	return r.openDatabase(true)
}

// openDatabase opens the configured database once per command; After closes it.
func (r *Runner) openDatabase(migrate bool) (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if r.config.Database.Path != ":memory:" {
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	}

	if migrate {
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	r.logger.Debug("database ready", "path", r.config.Database.Path, "migrated", migrate)
	r.db = db
	return db, nil
}

func (r *Runner) textFiles() (*repositories.TextFileRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewTextFileRepository(db), nil
}

// storeEngine returns a generator wired to the database.
func (r *Runner) storeEngine() (*tasks.Generator, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return tasks.NewGenerator(repositories.NewTextFileRepository(db), repositories.NewExpansionRepository(db)), nil
}

func (r *Runner) panelClient() *services.PanelClient {
	if r.panel == nil {
		r.panel = services.NewPanelClient(r.config.Panel.BaseURL, r.httpClient)
	}
	return r.panel
}

// readText returns the "text" argument, the --file contents, or stdin when the file is "-".
func (r *Runner) readText(cmd *cli.Command) (string, string, error) {
	if text := cmd.StringArg("text"); text != "" {
		return text, "", nil
	}

	path := cmd.String("file")
	switch path {
	case "":
		return "", "", fmt.Errorf("%w: pass template text or --file", shared.ErrMissingArgument)
	case "-":
		data, err := io.ReadAll(r.input)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "stdin", nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), path, nil
	}
}

// seed returns --seed when set, otherwise the configured default.
func (r *Runner) seed(cmd *cli.Command) uint64 {
	if cmd.IsSet("seed") {
		return cmd.Uint64("seed")
	}
	return r.config.Spin.Seed
}

// count returns --count when set, otherwise the configured default.
func (r *Runner) count(cmd *cli.Command) int {
	if cmd.IsSet("count") {
		return int(cmd.Int("count"))
	}
	return r.config.Spin.Variants
}

// progress starts a printer for updates and returns the channel plus a func that closes it and waits.
func (r *Runner) progress(report func(tasks.ProgressUpdate)) (chan tasks.ProgressUpdate, func()) {
	ch := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range ch {
			report(update)
		}
	}()
	return ch, func() {
		close(ch)
		<-done
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	rule := strings.Repeat("═", 39)
	r.writePlain("%s\n%v\n%s\n", rule, title, rule)
}
