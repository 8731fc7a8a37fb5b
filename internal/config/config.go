// Package config holds the configuration of the catalog service.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Metrics    config.MetricsConfig    `koanf:"metrics"`
	NATS       config.NATSConfig       `koanf:"nats"`
	CORS       config.CORSConfig       `koanf:"cors"`
	// SkipSeed leaves the store empty at startup instead of inserting the sample product.
	SkipSeed bool `koanf:"skipseed"`
}

type section interface {
	String() string
	Validate() error
}

func (c *Config) sections() []section {
	return []section{
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.Telemetry,
		&c.Metrics,
		&c.NATS,
		&c.CORS,
	}
}

func (c *Config) String() string {
	var b strings.Builder
	for _, s := range c.sections() {
		b.WriteString(s.String())
	}
	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  skipseed: %t\n", c.SkipSeed))
	return b.String()
}

// Validate checks every section in order and returns the first failure.
// Sections may fill in defaults while validating.
func (c *Config) Validate() error {
	for _, s := range c.sections() {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
