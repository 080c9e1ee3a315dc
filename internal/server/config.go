package server

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config configures the HTTP server.
type Config struct {
	Addr            string        `json:"addr"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	MaxBodySize     int64         `json:"max_body_size"`
	// Tenant is used for custom field lookups when a request has no
	// tenant parameter.
	Tenant string `json:"tenant"`
}

// DefaultConfig returns the settings used for zero fields.
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1",
		Port:            8010,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		MaxBodySize:     8 << 20,
	}
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
}

// Check rejects settings the server cannot run with.
func (c Config) Check() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server: invalid port %d", c.Port)
	}

	if c.MaxBodySize < 0 {
		return fmt.Errorf("server: invalid max body size %d", c.MaxBodySize)
	}

	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}

	if c.MaxBodySize == 0 {
		c.MaxBodySize = def.MaxBodySize
	}
}
