package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexhholmes/abilayout/internal/logger"
	"github.com/alexhholmes/abilayout/internal/report"
)

type options struct {
	logLevel string
	logEnv   string
	logFile  string
	out      string

	format report.Format
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	opts := &options{
		logLevel: envOr("ABICHECK_LOG_LEVEL", "info"),
		logEnv:   envOr("ABICHECK_LOG_ENV", "dev"),
		logFile:  envOr("ABICHECK_LOG_FILE", "stderr"),
		out:      envOr("ABICHECK_OUT", "text"),
	}

	root := &cobra.Command{
		Use:           "abicheck",
		Short:         "Inspect and compare binary layouts of versioned records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.out)
			if err != nil {
				return err
			}
			opts.format = format
			logger.Init(logger.Config{Env: opts.logEnv, Level: opts.logLevel, Output: opts.logFile})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug|info|warn|error (env ABICHECK_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&opts.logEnv, "log-env", opts.logEnv, "Log encoding: dev|prod (env ABICHECK_LOG_ENV)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", opts.logFile, "Log destination: stderr|stdout|<path> (env ABICHECK_LOG_FILE)")
	root.PersistentFlags().StringVar(&opts.out, "out", opts.out, "Output format: text|json|yaml (env ABICHECK_OUT)")

	root.AddCommand(
		newDumpCmd(opts),
		newGenCmd(opts),
		newDiffCmd(opts),
		newSimulateCmd(opts),
	)

	return root
}
