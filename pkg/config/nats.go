package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultNATSTimeout bounds the dial and the stream setup when no timeout is configured.
const DefaultNATSTimeout = 5 * time.Second

// NATSConfig configures the optional JetStream event publisher.
// Url may list several servers separated by commas, as the nats client accepts.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	if c.Enabled {
		b.WriteString(fmt.Sprintf("  servers: %s\n", c.Url))
		b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	}
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Url) == "" {
		return fmt.Errorf("NATS URL is not configured")
	}
	for _, server := range strings.Split(c.Url, ",") {
		u, err := url.Parse(strings.TrimSpace(server))
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid NATS URL %q", server)
		}
		switch u.Scheme {
		case "nats", "tls", "ws", "wss":
		default:
			return fmt.Errorf("unsupported NATS URL scheme %q in %q", u.Scheme, server)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("nats timeout must not be negative: %s", c.Timeout)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultNATSTimeout
	}
	return nil
}
