package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/echa/config"
	"github.com/spf13/cobra"

	"restmapper/internal/schema"
	"restmapper/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP inspection server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := loadRegistry()
		if err != nil {
			return err
		}

		conv, err := newConverter()
		if err != nil {
			return err
		}

		src, closeMeta, err := openMetadata()
		if err != nil {
			return err
		}
		defer closeMeta()

		srv, err := server.New(server.Config{
			Addr:            config.GetString("server.addr"),
			Port:            config.GetInt("server.port"),
			ReadTimeout:     config.GetDuration("server.read_timeout"),
			WriteTimeout:    config.GetDuration("server.write_timeout"),
			ShutdownTimeout: config.GetDuration("server.shutdown_timeout"),
			MaxBodySize:     int64(config.GetInt("server.max_body_size")),
			Tenant:          config.GetString("metadata.tenant"),
		}, server.Engine{
			Registry:  reg,
			Deriver:   schema.NewDeriver(reg, schema.WithCache(config.GetInt("server.schema_cache"))),
			Converter: conv,
			Metadata:  src,
		})
		if err != nil {
			return err
		}

		if err := srv.Start(); err != nil {
			return err
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		return srv.Stop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
