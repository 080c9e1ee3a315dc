package main

import (
	"fmt"
	"os"

	"github.com/echa/config"
	logpkg "github.com/echa/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "restmapper [OPTIONS] [COMMAND]",
	Short:         "Inspect REST API object catalogs and convert records",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// overwrite config from command line
		if catalogPath != "" {
			config.Set("catalog.path", catalogPath)
		}

		if tenant != "" {
			config.Set("metadata.tenant", tenant)
		}
	},
}

var (
	// configuration handling
	conf        string
	catalogPath string
	tenant      string

	// verbosity levels
	verbose bool
	vdebug  bool
	vtrace  bool
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&conf, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "object catalog `file` (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "tenant used for custom field lookups")

	rootCmd.PersistentFlags().BoolVar(&verbose, "v", false, "be verbose")
	rootCmd.PersistentFlags().BoolVar(&vdebug, "vv", false, "debug mode")
	rootCmd.PersistentFlags().BoolVar(&vtrace, "vvv", false, "trace mode")
}

// Run executes the root command.
func Run() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetEnvPrefix(envPrefix)

	if conf != "" {
		config.SetConfigName(conf)
	}

	realconf := config.ConfigName()
	if _, err := os.Stat(realconf); err == nil {
		if err := config.ReadConfigFile(); err != nil {
			fmt.Fprintf(os.Stderr, "Could not read config %s: %v\n", realconf, err)
			os.Exit(1)
		}
	} else if conf != "" {
		fmt.Fprintf(os.Stderr, "Missing config file %s\n", realconf)
		os.Exit(1)
	}

	initLogging()

	// overwrite all subsystem levels
	switch {
	case vtrace:
		setLogLevels(logpkg.LevelTrace)
	case vdebug:
		setLogLevels(logpkg.LevelDebug)
	case verbose:
		setLogLevels(logpkg.LevelInfo)
	}

	if _, err := os.Stat(realconf); err == nil {
		log.Infof("Using configuration file %s", realconf)
	}
}
