package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/graft/internal/logging"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft is an asynchronous workflow engine for iterative optimization",
	Long: `Graft runs composable solving workflows over binary quadratic models.
Problems are described in YAML or JSON and solved by pluggable samplers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelFromEnv()
		if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
			if parsed, ok := logging.ParseLevel(flag); ok {
				level = parsed
			} else {
				fmt.Fprintf(os.Stderr, "Unknown log level %q, using default\n", flag)
			}
		}
		logger = logging.New(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity (trace, debug, info, warning, error, critical)")
}
