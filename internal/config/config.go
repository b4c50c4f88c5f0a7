package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"github.com/sajjad-MoBe/slotstore/internal/logging"
)

// Config holds the settings of a slotstore process. Environment variables
// provide defaults which command line flags override.
type Config struct {
	// Deployment selects the save/read variant to serve
	Deployment string `env:"SLOTSTORE_DEPLOYMENT" envDefault:"message"`

	// Address is the listening address of the HTTP server in the form <ip>:<port>
	Address string `env:"SLOTSTORE_ADDRESS" envDefault:":8080"`

	// GRPCAddress enables the gRPC server when set
	GRPCAddress string `env:"SLOTSTORE_GRPC_ADDRESS"`

	// JaegerEndpoint enables trace export when set
	JaegerEndpoint string `env:"SLOTSTORE_JAEGER_ENDPOINT"`

	// Server is the base URL used by the client commands
	Server string `env:"SLOTSTORE_SERVER" envDefault:"http://localhost:8080"`

	Logging logging.Config
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// AddServerFlags binds the flags of the serve command
func AddServerFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVarP(&cfg.Deployment, "deployment", "d", cfg.Deployment, "Deployment to serve: message or name")
	flags.StringVarP(&cfg.Address, "address", "a", cfg.Address, "Address for the HTTP server to listen on")
	flags.StringVar(&cfg.GRPCAddress, "grpc-address", cfg.GRPCAddress, "Address for the gRPC server to listen on (disabled when empty)")
	flags.StringVar(&cfg.JaegerEndpoint, "jaeger-endpoint", cfg.JaegerEndpoint, "Jaeger collector endpoint (tracing disabled when empty)")
}

// AddClientFlags binds the flags of the client commands
func AddClientFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVarP(&cfg.Deployment, "deployment", "d", cfg.Deployment, "Deployment the server runs: message or name")
	flags.StringVarP(&cfg.Server, "server", "s", cfg.Server, "Base URL of the slotstore server")
}
