package main

import (
	"time"

	"github.com/echa/config"

	"restmapper/internal/schema"
)

const envPrefix = "RESTMAPPER"

func init() {
	// object catalog, empty means the embedded one
	config.SetDefault("catalog.path", "")

	// custom field metadata
	config.SetDefault("metadata.path", "")     // YAML table of tenant custom fields
	config.SetDefault("metadata.snapshot", "") // bbolt snapshot of metadata answers
	config.SetDefault("metadata.tenant", "")   // default tenant

	// conversion
	config.SetDefault("convert.coercion", "default")

	// HTTP inspection server
	config.SetDefault("server.addr", "127.0.0.1")
	config.SetDefault("server.port", 8010)
	config.SetDefault("server.read_timeout", 5*time.Second)
	config.SetDefault("server.write_timeout", 15*time.Second)
	config.SetDefault("server.shutdown_timeout", 15*time.Second)
	config.SetDefault("server.max_body_size", 8<<20)
	config.SetDefault("server.schema_cache", schema.DefaultCacheSize)
}
