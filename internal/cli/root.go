// Package cli wires the callcenter command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	cfg config.Config
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callcenter",
		Short: "Bilingual call intake and routing engine",
		Long:  "Callcenter drives structured IVR intake, keyword intent classification, and department routing for inbound customer calls.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = "callcenter.yaml"
			}
			var err error
			cfg, err = config.Load(path)
			if err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			log = logging.New(os.Stderr, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default callcenter.yaml in the working directory)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newTicketCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
