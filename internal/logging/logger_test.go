package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		contains  []string
		notLogged bool
	}{
		{
			name:     "text info",
			cfg:      Config{Format: "text"},
			contains: []string{"level=INFO", "msg=saved", "deployment=name"},
		},
		{
			name:     "json info",
			cfg:      Config{Format: "json"},
			contains: []string{`"level":"INFO"`, `"msg":"saved"`, `"deployment":"name"`},
		},
		{
			name:      "verbose suppressed",
			cfg:       Config{Format: "text", Verbosity: 0},
			notLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewWithWriter(&buf, tt.cfg)
			require.NoError(t, err)

			if tt.notLogged {
				logger.V(1).Info("debug detail")
				assert.Empty(t, buf.String())
				return
			}
			logger.Info("saved", "deployment", "name")
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestLoggerVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Format: "text", Verbosity: 1})
	require.NoError(t, err)

	logger.V(1).Info("debug detail")
	assert.Contains(t, buf.String(), "msg=\"debug detail\"")
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, Config{Format: "text"})
	require.NoError(t, err)

	logger.Error(errors.New("boom"), "request failed")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "boom")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestAddFlags(t *testing.T) {
	cfg := Config{Format: "json", Verbosity: 2}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags, &cfg)

	require.NoError(t, flags.Parse([]string{"--log-format", "text"}))
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 2, cfg.Verbosity)
}
