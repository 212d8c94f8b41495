package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// QUIZMASTER_PRACTICE_ATTEMPTS.
const EnvPrefix = "QUIZMASTER"

const (
	DefaultThreshold    = 80
	DefaultLogLevel     = "info"
	defaultDatabaseFile = "quizmaster.db"
)

// Config holds the settings shared by every front end.
type Config struct {
	LearningSectionDirectory string `mapstructure:"learning_section_directory"` // root of category directories
	ImageDirectory           string `mapstructure:"image_directory"`            // root of question images
	ResultsDirectory         string `mapstructure:"results_directory"`          // root of result histories
	PracticeAttempts         int    `mapstructure:"practice_attempts"`          // drills after a wrong part
	FuzzySearchThreshold     int    `mapstructure:"fuzzy_search_threshold"`     // minimum match ratio, 0-100
	LearningCountsFile       string `mapstructure:"learning_counts_file"`       // learning-count table; empty means inside results_directory
	Database                 string `mapstructure:"database"`                   // event journal; empty means inside results_directory
	LogLevel                 string `mapstructure:"log_level"`

	missing []string // keys with no default that no source set
}

// DatabasePath returns the event journal location.
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	return filepath.Join(c.ResultsDirectory, defaultDatabaseFile)
}

// Options control where Load looks.
type Options struct {
	// File is an explicit config file. When empty, config.json is searched
	// in the working directory and the user config directory.
	File string
	// EnvFile is a dotenv file loaded before reading the environment.
	// Missing files are ignored.
	EnvFile string
	// Fs is the filesystem config files are read from. Nil means the host.
	Fs afero.Fs
	// Overrides are applied last, e.g. from command-line flags.
	Overrides map[string]any
}

// Error lists every problem found in the loaded configuration.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Load reads configuration from file, dotenv, environment and overrides,
// in increasing order of precedence.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "quizmaster"))
		}
	}

	v.SetDefault("learning_section_directory", "")
	v.SetDefault("image_directory", "")
	v.SetDefault("results_directory", "")
	// No default: an absent value must fail validation, not read as 0.
	if err := v.BindEnv("practice_attempts"); err != nil {
		return nil, fmt.Errorf("bind practice_attempts: %w", err)
	}
	v.SetDefault("fuzzy_search_threshold", DefaultThreshold)
	v.SetDefault("learning_counts_file", "")
	v.SetDefault("database", "")
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	for k, val := range opts.Overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if !v.IsSet("practice_attempts") {
		cfg.missing = append(cfg.missing, "practice_attempts")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required keys and ranges. It reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	required := []struct{ key, val string }{
		{"learning_section_directory", c.LearningSectionDirectory},
		{"image_directory", c.ImageDirectory},
		{"results_directory", c.ResultsDirectory},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			problems = append(problems, r.key+" is required")
		}
	}
	for _, k := range c.missing {
		problems = append(problems, k+" is required")
	}
	if c.PracticeAttempts <= 0 && !slices.Contains(c.missing, "practice_attempts") {
		problems = append(problems, fmt.Sprintf("practice_attempts must be > 0, got %d", c.PracticeAttempts))
	}
	if c.FuzzySearchThreshold < 0 || c.FuzzySearchThreshold > 100 {
		problems = append(problems, fmt.Sprintf("fuzzy_search_threshold must be within 0-100, got %d", c.FuzzySearchThreshold))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if len(problems) > 0 {
		return &Error{Problems: problems}
	}
	return nil
}
