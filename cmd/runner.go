package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/repositories"
	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/desertthunder/flashdeck/internal/vocab"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is resolved from each command's --config flag on first use.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		studyCommand, deckCommand, importCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// resolveConfig returns the runner's config, loading it from --config and the environment the first time.
func (r *Runner) resolveConfig(cmd *cli.Command) *shared.Config {
	if r.config == nil {
		r.config = shared.ResolveConfig(cmd.String("config"), r.logger)
		if err := shared.SetLogLevel(r.logger, r.config.Log.Level); err != nil {
			r.logger.Warn("invalid log level", "error", err)
		}
	}
	return r.config
}

func (r *Runner) client(config *shared.Config) *http.Client {
	if r.httpClient != nil {
		return r.httpClient
	}
	return &http.Client{Timeout: config.Fetch.Timeout()}
}

// openCatalog opens the SQLite catalog named by the config.
func (r *Runner) openCatalog(config *shared.Config) (*sql.DB, *repositories.CardRepository, error) {
	db, err := shared.OpenCatalog(config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog %s: %w", config.Database.Path, err)
	}
	return db, repositories.NewCardRepository(db), nil
}

// loadDeck loads the deck named by spec, opening the catalog only for the "db:" source.
func (r *Runner) loadDeck(ctx context.Context, config *shared.Config, spec string) (*models.Deck, error) {
	opts := vocab.OpenOpts{Client: r.client(config)}

	if vocab.IsCatalog(spec) {
		db, repo, err := r.openCatalog(config)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrLoadFailed, err)
		}
		defer db.Close()
		opts.Catalog = repo
	}

	src, err := vocab.Open(spec, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrLoadFailed, err)
	}

	r.logger.Debug("loading vocabulary", "source", src)
	d, err := vocab.LoadDeck(ctx, src)
	if err != nil {
		return nil, err
	}
	r.logger.Info("vocabulary loaded", "source", src, "cards", d.Len(), "categories", len(d.Categories()))
	return d, nil
}

func (r *Runner) labels(config *shared.Config, cmd *cli.Command) models.Labels {
	lang := config.Deck.Language
	if cmd.IsSet("lang") {
		lang = cmd.String("lang")
	}
	return models.LabelsFor(models.Language(lang))
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
