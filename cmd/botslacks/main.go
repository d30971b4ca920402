// Package main provides the CLI entry point for botslacks, a Slack bot that
// routes command-prefixed chat messages to registered handlers.
//
// # Basic Usage
//
// Start the bot:
//
//	botslacks serve --config botslacks.yaml
//
// # Environment Variables
//
// The config file may reference environment variables, e.g.:
//
//	slack:
//	  token: ${SLACK_TOKEN}
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "botslacks",
		Short:         "A Slack command bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(buildServeCmd())
	rootCmd.AddCommand(buildVersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("botslacks %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
