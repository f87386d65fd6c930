package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Validate checks value ranges on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}
	if c.Engine.PassThreshold < 0 || c.Engine.PassThreshold > 100 {
		return fmt.Errorf("engine.pass_threshold must be in 0..100 (got %v)", c.Engine.PassThreshold)
	}
	if c.Engine.SuggestionLimit < 0 {
		return fmt.Errorf("engine.suggestion_limit must be >= 0 (got %d)", c.Engine.SuggestionLimit)
	}
	return nil
}

// Origins splits the comma-separated AllowedOrigins list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods splits the comma-separated AllowedMethods list.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers splits the comma-separated AllowedHeaders list.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
