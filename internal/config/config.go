// Package config loads langconf runtime settings.
//
// Settings come from environment variables, with defaults from the struct
// tags, and are then overlaid with values set on the command line. A
// command-line value only wins when it is non-zero: a flag cannot reset a
// number to zero or a boolean to false once the environment has set it.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/erraggy/langconf/expander"
	"github.com/erraggy/langconf/lcerrors"
	"github.com/erraggy/langconf/parser"
	"github.com/erraggy/langconf/serializer"
	"github.com/erraggy/langconf/source"
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds every runtime setting.
type Config struct {
	// GitHubToken authenticates commit lookups against the GitHub API
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GitHubAPIURL string `env:"LANGCONF_GITHUB_API_URL" envDefault:"https://api.github.com"`
	// UserAgent defaults to langconf/<version> when empty
	UserAgent    string        `env:"LANGCONF_USER_AGENT"`
	HTTPTimeout  time.Duration `env:"LANGCONF_HTTP_TIMEOUT" envDefault:"30s"`
	MaxRedirects int           `env:"LANGCONF_MAX_REDIRECTS" envDefault:"5"`
	MaxFileSize  int64         `env:"LANGCONF_MAX_FILE_SIZE" envDefault:"10485760"`

	// Indent is "tab", a number of spaces, or literal whitespace
	Indent         string `env:"LANGCONF_INDENT" envDefault:"tab"`
	Recursive      bool   `env:"LANGCONF_RECURSIVE"`
	MaxDepth       int    `env:"LANGCONF_MAX_DEPTH" envDefault:"32"`
	CheckStructure bool   `env:"LANGCONF_CHECK_STRUCTURE"`

	LogLevel  string `env:"LANGCONF_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LANGCONF_LOG_FORMAT" envDefault:"console"`
}

// Load reads the environment and overlays the non-zero fields of flags,
// which may be nil. The result is validated.
func Load(flags *Config) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, &lcerrors.ConfigError{Message: "cannot read environment", Cause: err}
	}
	if flags != nil {
		if err := mergo.Merge(cfg, flags, mergo.WithOverride); err != nil {
			return nil, &lcerrors.ConfigError{Message: "cannot apply command-line options", Cause: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports the first invalid one.
func (c *Config) Validate() error {
	switch {
	case c.HTTPTimeout <= 0:
		return invalid("http-timeout", c.HTTPTimeout.String(), "must be positive")
	case c.MaxRedirects < 0:
		return invalid("max-redirects", fmt.Sprint(c.MaxRedirects), "must not be negative")
	case c.MaxFileSize <= 0:
		return invalid("max-file-size", fmt.Sprint(c.MaxFileSize), "must be positive")
	case c.MaxDepth < 1:
		return invalid("max-depth", fmt.Sprint(c.MaxDepth), "must be at least 1")
	}
	if _, err := serializer.ParseIndent(c.Indent); err != nil {
		return &lcerrors.ConfigError{Option: "indent", Value: c.Indent, Cause: err}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil || c.LogLevel == "" {
		return invalid("log-level", c.LogLevel, "must be one of trace, debug, info, warn, error, fatal, panic, disabled")
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return invalid("log-format", c.LogFormat, "must be console or json")
	}
	return nil
}

func invalid(option, value, msg string) error {
	return &lcerrors.ConfigError{Option: option, Value: value, Message: msg}
}

// IndentUnit returns the parsed indent. Call after Validate.
func (c *Config) IndentUnit() string {
	indent, err := serializer.ParseIndent(c.Indent)
	if err != nil {
		return serializer.DefaultIndent
	}
	return indent
}

// NewLogger builds the zerolog logger described by the configuration,
// writing to w. Console output is colored only when w is a terminal.
func (c *Config) NewLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.LogFormat == LogFormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal(w),
			TimeFormat: time.Kitchen,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// NewLoader builds the content loader described by the configuration.
// extra is applied last.
func (c *Config) NewLoader(logger parser.Logger, extra ...source.LoaderOption) *source.Loader {
	opts := []source.LoaderOption{
		source.WithTimeout(c.HTTPTimeout),
		source.WithMaxRedirects(c.MaxRedirects),
		source.WithMaxFileSize(c.MaxFileSize),
		source.WithAPIURL(c.GitHubAPIURL),
		source.WithToken(c.GitHubToken),
		source.WithLogger(logger),
	}
	if c.UserAgent != "" {
		opts = append(opts, source.WithUserAgent(c.UserAgent))
	}
	return source.NewLoader(append(opts, extra...)...)
}

// ExpanderOptions returns the expander options described by the
// configuration, using loader to fetch parents.
func (c *Config) ExpanderOptions(loader source.Fetcher, logger parser.Logger) []expander.Option {
	return []expander.Option{
		expander.WithFetcher(loader),
		expander.WithLogger(logger),
		expander.WithRecursive(c.Recursive),
		expander.WithMaxDepth(c.MaxDepth),
		expander.WithCheckStructure(c.CheckStructure),
		expander.WithIndent(c.IndentUnit()),
	}
}
