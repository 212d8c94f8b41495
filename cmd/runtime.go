package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quant-rishabh/learn-through-quiz/internal/config"
	"github.com/quant-rishabh/learn-through-quiz/internal/content"
	"github.com/quant-rishabh/learn-through-quiz/internal/logging"
	"github.com/quant-rishabh/learn-through-quiz/internal/results"
	"github.com/quant-rishabh/learn-through-quiz/internal/session"
	"github.com/quant-rishabh/learn-through-quiz/internal/store"
)

const logFileName = "quizmaster.log"

type logTarget int

const (
	logToStderr logTarget = iota
	logToFile
)

// runtime is everything a command needs, built from configuration.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	content *content.Store
	results *results.Store
	store   *store.Store
}

// openRuntime loads configuration and opens the stores. A journal that
// cannot be opened is logged and left out; quizzes still run without it.
func openRuntime(cmd *cobra.Command, target logTarget) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	if target == logToFile {
		if err := store.EnsureDir(filepath.Join(cfg.ResultsDirectory, logFileName)); err != nil {
			return nil, fmt.Errorf("create results directory: %w", err)
		}
		logger, err = logging.ToFile(cfg.LogLevel, filepath.Join(cfg.ResultsDirectory, logFileName))
	} else {
		logger, err = logging.New(cfg.LogLevel)
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	fs := afero.NewOsFs()
	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		content: content.NewStore(fs, cfg.LearningSectionDirectory, cfg.ImageDirectory),
		results: results.New(fs, cfg.ResultsDirectory,
			results.WithCountsFile(cfg.LearningCountsFile),
			results.WithLogger(logger.Named("results")),
		),
	}

	dbPath := cfg.DatabasePath()
	if err := store.EnsureDir(dbPath); err != nil {
		logger.Warn("journal disabled", zap.String("path", dbPath), zap.Error(err))
		return rt, nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("journal disabled", zap.String("path", dbPath), zap.Error(err))
		return rt, nil
	}
	rt.store = st
	return rt, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	file, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")

	overrides := map[string]any{}
	if db, _ := flags.GetString("db"); db != "" {
		overrides["database"] = db
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		overrides["log_level"] = level
	}

	cfg, err := config.Load(config.Options{File: file, EnvFile: envFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// journal returns the event repo, or nil when the journal is disabled.
func (rt *runtime) journal() store.EventRepo {
	if rt.store == nil {
		return nil
	}
	return rt.store.EventRepo()
}

// sessionOptions is the template every quiz in this process starts from.
func (rt *runtime) sessionOptions(mode string) session.Options {
	opts := session.Options{
		Mode:             mode,
		PracticeAttempts: rt.cfg.PracticeAttempts,
		Threshold:        rt.cfg.FuzzySearchThreshold,
		Logger:           rt.logger.Named("session"),
	}
	if j := rt.journal(); j != nil {
		opts.Journal = j
	}
	return opts
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("close journal", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}
