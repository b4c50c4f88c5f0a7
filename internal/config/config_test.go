package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "message", cfg.Deployment)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Empty(t, cfg.GRPCAddress)
	assert.Empty(t, cfg.JaegerEndpoint)
	assert.Equal(t, "http://localhost:8080", cfg.Server)
	assert.Equal(t, "default", cfg.Logging.Format)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SLOTSTORE_DEPLOYMENT", "name")
	t.Setenv("SLOTSTORE_ADDRESS", ":9090")
	t.Setenv("SLOTSTORE_GRPC_ADDRESS", ":9091")
	t.Setenv("SLOTSTORE_LOG_FORMAT", "json")
	t.Setenv("SLOTSTORE_VERBOSITY", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "name", cfg.Deployment)
	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, ":9091", cfg.GRPCAddress)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 2, cfg.Logging.Verbosity)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("SLOTSTORE_VERBOSITY", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SLOTSTORE_ADDRESS", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	AddServerFlags(flags, &cfg)
	require.NoError(t, flags.Parse([]string{"--deployment", "name"}))

	assert.Equal(t, "name", cfg.Deployment)
	assert.Equal(t, ":9090", cfg.Address)
}

func TestClientFlags(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	flags := pflag.NewFlagSet("read", pflag.ContinueOnError)
	AddClientFlags(flags, &cfg)
	require.NoError(t, flags.Parse([]string{"-s", "http://example:1234"}))

	assert.Equal(t, "http://example:1234", cfg.Server)
}
