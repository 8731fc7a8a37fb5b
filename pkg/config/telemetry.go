package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultOtlpTimeout is applied to the OTLP exporter when the traces section leaves it unset.
const DefaultOtlpTimeout = 10 * time.Second

type TelemetryConfig struct {
	Traces TracesConfig `koanf:"traces"`
}

type TracesConfig struct {
	Enabled  bool           `koanf:"enabled"`
	OtlpHttp OtlpHttpConfig `koanf:"otlphttp"`
}

// OtlpHttpConfig points the trace exporter at a collector. Endpoint is host:port
// without a scheme; Insecure switches the exporter to plain HTTP.
type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *TelemetryConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Telemetry ---\n")
	b.WriteString(fmt.Sprintf("  traces.enabled: %t\n", c.Traces.Enabled))
	if !c.Traces.Enabled {
		return b.String()
	}
	scheme := "https"
	if c.Traces.OtlpHttp.Insecure {
		scheme = "http"
	}
	b.WriteString(fmt.Sprintf("  traces.collector: %s://%s (timeout %s)\n", scheme, c.Traces.OtlpHttp.Endpoint, c.Traces.OtlpHttp.Timeout))
	return b.String()
}

func (c *TelemetryConfig) Validate() error {
	if !c.Traces.Enabled {
		return nil
	}
	otlp := &c.Traces.OtlpHttp
	if otlp.Endpoint == "" {
		return fmt.Errorf("OTel endpoint is not configured")
	}
	if _, _, err := net.SplitHostPort(otlp.Endpoint); err != nil {
		return fmt.Errorf("OTel endpoint must be host:port: %w", err)
	}
	switch {
	case otlp.Timeout < 0:
		return fmt.Errorf("telemetry timeout must not be negative: %s", otlp.Timeout)
	case otlp.Timeout == 0:
		otlp.Timeout = DefaultOtlpTimeout
	}
	return nil
}
