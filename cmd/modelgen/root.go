package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	modelgen "github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/internal/sqlstore"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has resolved configuration and logging.
type app struct {
	viper      *viper.Viper
	configPath string
	cfg        *Config
	logger     *zap.Logger
	picker     picker
}

func newApp() *app {
	return &app{viper: newViper(), picker: surveyPicker{}}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "modelgen",
		Short: "Generate strongly typed model classes from content type schemas",
		Long: `modelgen reads content type descriptors from a catalog document, an
OpenAPI document or a SQLite database and prints the model classes they
describe.

Examples:
  modelgen list --source site.yaml
  modelgen generate 3 --source site.yaml --renderer ansi
  modelgen generate --dsn models.db            # pick a content type
  modelgen import --source openapi.yaml --dsn models.db
  modelgen watch 3 --source site.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./modelgen.yaml)")
	flags.StringP("source", "s", "", "schema document path or URL")
	flags.String("dsn", "", "SQLite database used as the content type provider")
	flags.StringP("format", "f", "", "document format: catalog or openapi (detected when empty)")
	flags.StringP("renderer", "r", "", "output renderer: plain, ansi or html")
	flags.StringP("output", "o", "", "output file (stdout when empty)")
	flags.String("theme-file", "", "YAML file with theme manifests")
	flags.String("theme", "", "theme name")
	flags.String("theme-variant", "", "theme variant")
	flags.Bool("log-json", false, "emit JSON logs")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Duration("http-timeout", defaultTimeout, "timeout for remote schema documents")

	root.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newWatchCmd(a),
		newImportCmd(a),
		newLintCmd(a),
		newRenderersCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := bindFlags(a.viper, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := LoadConfig(a.viper, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.Log.JSON, cfg.Log.Verbose)
		if err != nil {
			return errors.Wrap(err, "initialise logger")
		}
		a.logger = logger
	}
	a.logger.Debug("configuration loaded",
		zap.String(logging.FieldSource, cfg.Source),
		zap.String("dsn", cfg.DSN),
		zap.String(logging.FieldRenderer, cfg.Renderer),
		zap.String("config_file", a.viper.ConfigFileUsed()),
	)
	return nil
}

// session is one configured pipeline: an orchestrator plus whatever it owns.
type session struct {
	orch  *orchestrator.Orchestrator
	store *sqlstore.Store
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// open builds the orchestrator described by the configuration. A DSN makes
// the SQLite store the default provider.
func (a *app) open(ctx context.Context) (*session, error) {
	s := &session{}
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithLoader(modelgen.NewLoader(
			schema.WithHTTPFallback(a.cfg.HTTP.Timeout),
			schema.WithLoaderLogger(a.logger),
		)),
	}

	if a.cfg.DSN != "" {
		store, err := sqlstore.Open(ctx, a.cfg.DSN, sqlstore.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		s.store = store
		options = append(options, orchestrator.WithProvider(store))
	}

	if a.cfg.Theme.File != "" {
		selector, err := loadThemes(a.cfg.Theme.File)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(selector, a.cfg.Theme.Name, a.cfg.Theme.Variant))
	}

	s.orch = orchestrator.New(options...)
	return s, nil
}

// request maps the configuration onto an orchestrator request. The source
// wins over the DSN for reads; import uses both.
func (a *app) request(contentTypeID int) orchestrator.Request {
	return orchestrator.Request{
		ContentTypeID: contentTypeID,
		Source:        schema.ParseSource(strings.TrimSpace(a.cfg.Source)),
		Format:        a.cfg.Format,
		Renderer:      a.cfg.Renderer,
		ThemeName:     a.cfg.Theme.Name,
		ThemeVariant:  a.cfg.Theme.Variant,
	}
}

func (a *app) requireInput() error {
	if strings.TrimSpace(a.cfg.Source) == "" && a.cfg.DSN == "" {
		return errors.New("a --source or --dsn is required")
	}
	return nil
}

// write sends output to the configured file, or to w.
func (a *app) write(w io.Writer, output []byte) error {
	if a.cfg.Output == "" {
		if _, err := w.Write(output); err != nil {
			return errors.Wrap(err, "write output")
		}
		if len(output) > 0 && output[len(output)-1] != '\n' {
			_, _ = io.WriteString(w, "\n")
		}
		return nil
	}
	if err := os.WriteFile(a.cfg.Output, output, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", a.cfg.Output)
	}
	a.logger.Info("model written", zap.String(logging.FieldPath, a.cfg.Output))
	return nil
}
