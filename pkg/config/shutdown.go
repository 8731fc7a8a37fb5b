package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultShutdownTimeout bounds how long each server gets to drain when none is configured.
const DefaultShutdownTimeout = 15 * time.Second

// ShutdownConfig bounds graceful shutdown of the HTTP, gRPC and pprof servers.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  drain timeout: %s\n", c.Timeout))
	return b.String()
}

// Validate fills in DefaultShutdownTimeout for a zero timeout and rejects negative ones.
func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout < 0:
		return fmt.Errorf("shutdown timeout must not be negative: %s", c.Timeout)
	case c.Timeout == 0:
		c.Timeout = DefaultShutdownTimeout
	}
	return nil
}
