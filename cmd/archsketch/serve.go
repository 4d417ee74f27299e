package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	golog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/archsketch/config"
	"github.com/deepnoodle-ai/archsketch/gemini"
	"github.com/deepnoodle-ai/archsketch/log"
	"github.com/deepnoodle-ai/archsketch/server"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/joho/godotenv"
)

// flagValues holds the command-line overrides. Empty values leave the
// loaded configuration untouched.
type flagValues struct {
	Address       string
	StaticDir     string
	Model         string
	LogLevel      string
	LogFormat     string
	ValidateEdges bool
}

func runServe(ctx *cli.Context) error {
	if err := loadEnvFile(ctx.String("env-file")); err != nil {
		return err
	}

	cfg, err := buildConfig(ctx.String("config"), flagValues{
		Address:       ctx.String("addr"),
		StaticDir:     ctx.String("static-dir"),
		Model:         ctx.String("model"),
		LogLevel:      ctx.String("log-level"),
		LogFormat:     ctx.String("log-format"),
		ValidateEdges: ctx.Bool("validate-edges"),
	})
	if err != nil {
		return err
	}
	if ctx.Bool("print-config") {
		return cfg.Write(os.Stdout)
	}

	logger := newLogger(cfg.Logging)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := newGenerator(runCtx, cfg.Gemini, logger)
	srv := newServer(cfg.Server, generator, logger)

	printBanner(os.Stderr, cfg, generator != nil)
	return srv.ListenAndServe(runCtx, cfg.Server.Address)
}

// loadEnvFile loads a dotenv file if it exists. Variables already present
// in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// buildConfig layers flag overrides on top of config.Load.
func buildConfig(path string, flags flagValues) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	override := &config.Config{
		Server: config.Server{
			Address:   flags.Address,
			StaticDir: flags.StaticDir,
		},
		Gemini: config.Gemini{
			Model: flags.Model,
		},
		Logging: config.Logging{
			Level:  flags.LogLevel,
			Format: flags.LogFormat,
		},
	}
	if flags.ValidateEdges {
		enabled := true
		override.Server.ValidateEdges = &enabled
	}
	cfg = config.Merge(cfg, override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.Logging) *log.StructuredLogger {
	return log.NewWithOptions(log.Options{
		Level:  log.LevelFromString(cfg.Level),
		Format: log.FormatFromString(cfg.Format),
		Writer: os.Stderr,
	})
}

// newGenerator returns nil when the Gemini client cannot be built. The
// server still starts and reports the problem on every generation request.
func newGenerator(ctx context.Context, cfg config.Gemini, logger log.Logger) archsketch.Generator {
	client, err := gemini.New(ctx,
		gemini.WithAPIKey(cfg.APIKey),
		gemini.WithProjectID(cfg.ProjectID),
		gemini.WithLocation(cfg.Location),
		gemini.WithModel(cfg.Model),
		gemini.WithBaseURL(cfg.BaseURL),
		gemini.WithLogger(logger.With("component", "gemini")),
	)
	if err != nil {
		logger.Warn("gemini client not initialized; diagram generation is disabled", "error", err)
		return nil
	}
	logger.Info("gemini client ready", "backend", client.Backend(), "model", client.Model())
	return client
}

func newServer(cfg config.Server, generator archsketch.Generator, logger log.Logger) *server.Server {
	opts := []server.Option{
		server.WithEntryPage(cfg.EntryPage),
		server.WithEdgeValidation(cfg.ValidateEdgesEnabled()),
		server.WithLogger(logger.With("component", "server")),
		server.WithErrorLog(httpErrorLog(logger)),
	}
	if cfg.StaticDir != "" {
		opts = append(opts, server.WithAssets(os.DirFS(cfg.StaticDir)))
	}
	return server.New(generator, opts...)
}

// httpErrorLog routes net/http's own error output into the structured
// logger at warn level. Other Logger implementations get nil, which keeps
// the net/http default.
func httpErrorLog(logger log.Logger) *golog.Logger {
	sl, ok := logger.(*log.StructuredLogger)
	if !ok {
		return nil
	}
	return slog.NewLogLogger(sl.Slog().Handler(), slog.LevelWarn)
}
