package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

const (
	DefaultFormat Format = "default"
	TextFormat    Format = "text"
	JSONFormat    Format = "json"
)

type (
	// Config selects the verbosity and output format of the logger
	Config struct {
		Verbosity int    `env:"SLOTSTORE_VERBOSITY" envDefault:"0"`
		Format    string `env:"SLOTSTORE_LOG_FORMAT" envDefault:"default"`
	}

	Format string
)

// AddFlags binds the logging flags to cfg. Values already in cfg become the
// flag defaults.
func AddFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.IntVarP(&cfg.Verbosity, "v", "v", cfg.Verbosity, "Logging level")
	flags.StringVar(&cfg.Format, "log-format", cfg.Format, "Logging format: default, text or json")
}

// New constructs a logr logger writing to stderr
func New(cfg Config) (logr.Logger, error) {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter constructs a logr logger writing to w
func NewWithWriter(w io.Writer, cfg Config) (logr.Logger, error) {
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Verbosity)}

	var h slog.Handler
	switch Format(cfg.Format) {
	case DefaultFormat, TextFormat:
		h = slog.NewTextHandler(w, opts)
	case JSONFormat:
		h = slog.NewJSONHandler(w, opts)
	default:
		return logr.Logger{}, fmt.Errorf("unrecognised logging format: %s", cfg.Format)
	}
	return logr.FromSlogHandler(h), nil
}

// toSlogLevel converts a logr v-level to a slog level.
func toSlogLevel(verbosity int) slog.Level {
	if verbosity <= 0 {
		return slog.LevelInfo
	}
	return slog.Level(-verbosity)
}
