package config

import (
	"fmt"
	"strings"
	"time"
)

type CORSConfig struct {
	AllowedOrigins   []string      `koanf:"allowedorigins"`
	AllowedMethods   []string      `koanf:"allowedmethods"`
	AllowedHeaders   []string      `koanf:"allowedheaders"`
	AllowCredentials bool          `koanf:"allowcredentials"`
	MaxAge           time.Duration `koanf:"maxage"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  allowedorigins: %v\n", c.AllowedOrigins))
	b.WriteString(fmt.Sprintf("  allowedmethods: %v\n", c.AllowedMethods))
	b.WriteString(fmt.Sprintf("  allowedheaders: %v\n", c.AllowedHeaders))
	b.WriteString(fmt.Sprintf("  allowcredentials: %t\n", c.AllowCredentials))
	b.WriteString(fmt.Sprintf("  maxage: %s\n", c.MaxAge))
	return b.String()
}

// Validate fills in allow-all defaults for any list left empty.
func (c *CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"*"}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("invalid CORS max age: %v", c.MaxAge)
	}
	return nil
}
