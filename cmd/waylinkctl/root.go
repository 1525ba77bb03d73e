package main

import (
	"os"

	"github.com/waylink-go/waylink/internal/cmdlogger"

	"github.com/spf13/cobra"
)

var (
	socketPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "waylinkctl",
	Short: "Drive a waylink listener or connection from the command line",
	Long: `waylinkctl is a small diagnostic tool for the waylink wire-protocol
runtime. It can bind a listener and report on accepted connections (serve),
or connect to one and send a single header-only message (dial).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdlogger.SetLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "socket path (defaults to $XDG_RUNTIME_DIR/$WAYLAND_DISPLAY)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, dialCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print waylinkctl's version",
	Run: func(cmd *cobra.Command, args []string) {
		cmdlogger.Get().Info().Msg("waylinkctl dev")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
