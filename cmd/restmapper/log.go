package main

import (
	"github.com/echa/config"
	logpkg "github.com/echa/log"

	"restmapper/internal/metadata"
	"restmapper/internal/record"
	"restmapper/internal/registry"
	"restmapper/internal/schema"
	"restmapper/internal/server"
)

var (
	log     = logpkg.NewLogger("MAIN") // main program
	schmLog = logpkg.NewLogger("SCHM") // registry and schema derivation
	convLog = logpkg.NewLogger("CONV") // record conversion
	metaLog = logpkg.NewLogger("META") // custom field metadata
	httpLog = logpkg.NewLogger("HTTP") // inspection server
)

func init() {
	config.SetDefault("log.backend", "stderr")
	config.SetDefault("log.flags", "date,time,utc")
	config.SetDefault("log.level", "warn")
	config.SetDefault("log.schema", "warn")
	config.SetDefault("log.convert", "warn")
	config.SetDefault("log.metadata", "warn")
	config.SetDefault("log.server", "info")

	useLoggers()
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]logpkg.Logger{
	"MAIN": log,
	"SCHM": schmLog,
	"CONV": convLog,
	"META": metaLog,
	"HTTP": httpLog,
}

func useLoggers() {
	registry.UseLogger(schmLog)
	schema.UseLogger(schmLog)
	record.UseLogger(convLog)
	metadata.UseLogger(metaLog)
	server.UseLogger(httpLog)
}

func initLogging() {
	cfg := logpkg.NewConfig()
	cfg.Level = logpkg.ParseLevel(config.GetString("log.level"))
	cfg.Flags = logpkg.ParseFlags(config.GetString("log.flags"))
	cfg.Backend = config.GetString("log.backend")
	logpkg.Init(cfg)

	// create loggers with configured backend
	log = logpkg.NewLogger("MAIN")
	log.SetLevel(logpkg.ParseLevel(config.GetString("log.level")))
	schmLog = logpkg.NewLogger("SCHM")
	schmLog.SetLevel(logpkg.ParseLevel(config.GetString("log.schema")))
	convLog = logpkg.NewLogger("CONV")
	convLog.SetLevel(logpkg.ParseLevel(config.GetString("log.convert")))
	metaLog = logpkg.NewLogger("META")
	metaLog.SetLevel(logpkg.ParseLevel(config.GetString("log.metadata")))
	httpLog = logpkg.NewLogger("HTTP")
	httpLog.SetLevel(logpkg.ParseLevel(config.GetString("log.server")))

	useLoggers()

	subsystemLoggers = map[string]logpkg.Logger{
		"MAIN": log,
		"SCHM": schmLog,
		"CONV": convLog,
		"META": metaLog,
		"HTTP": httpLog,
	}
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.
func setLogLevels(level logpkg.Level) {
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
