package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultEnvFile is read for environment variables when ENV_PATH is unset.
const DefaultEnvFile = ".env"

// DefaultLogLevel is used when LOG_LEVEL is unset or empty.
const DefaultLogLevel = "warn"

// Config holds application configuration.
// Built once by Load and passed explicitly; nothing reads the environment afterwards.
type Config struct {
	// GitLab configuration
	GitLabURI    string `env:"GITLAB_URI" env-required:"true" validate:"required,url"`
	PrivateToken string `env:"PRIVATE_TOKEN" env-required:"true" validate:"required"`

	// Issue tracker configuration
	// JiraRegex is a comma-separated list of patterns, each with one capture group
	// for the issue id (e.g. "PROJ-(\d+),OPS-(\d+)")
	JiraURL   string `env:"JIRA_URL" validate:"omitempty,url"`
	JiraRegex string `env:"JIRA_REGEX"`

	LogLevel string `env:"LOG_LEVEL" env-default:"warn" validate:"omitempty,oneof=debug info warn error"`

	EnvFile string `env:"ENV_PATH"`
}

// Error reports invalid or missing configuration.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load loads configuration from environment variables.
// When the dotenv file at ENV_PATH (default ".env") exists, its variables are
// exported first. Variables already set in the environment keep their value.
func Load() (*Config, error) {
	var cfg Config

	path := getEnvOrDefault("ENV_PATH", DefaultEnvFile)
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, &Error{Err: errors.Wrapf(err, "read %s", path)}
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, &Error{Err: err}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, &Error{Err: err}
	}

	cfg.GitLabURI = strings.TrimRight(cfg.GitLabURI, "/")
	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")
	cfg.EnvFile = path
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, err := cfg.IssuePatterns(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IssuePatterns compiles JiraRegex in configured order.
// Every pattern must contain at least one capture group.
func (c *Config) IssuePatterns() ([]*regexp.Regexp, error) {
	if c.JiraRegex == "" {
		return nil, nil
	}

	exprs := strings.Split(c.JiraRegex, ",")
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		if expr == "" {
			continue
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &Error{Err: errors.Wrapf(err, "JIRA_REGEX pattern %q", expr)}
		}
		if re.NumSubexp() < 1 {
			return nil, &Error{Err: errors.Errorf("JIRA_REGEX pattern %q has no capture group", expr)}
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// HasIssueTracker returns true if issue links can be built.
func (c *Config) HasIssueTracker() bool {
	return c.JiraURL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
