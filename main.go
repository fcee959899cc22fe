package main

import (
	"fmt"
	"os"

	"github.com/worldapptech/woosync/internal/cli"
	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/entrypoint"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is the surface every CLI subcommand exposes.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// No arguments or "serve" starts the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	args := os.Args[2:]

	switch os.Args[1] {
	case "sync-run":
		runCommand(cli.NewSyncRunCommand(), args)

	case "test-connections":
		runCommand(cli.NewTestConnectionsCommand(), args)

	case "enable-images":
		runCommand(cli.NewEnableImagesCommand(), args)

	case "version":
		fmt.Printf("woosync %s (commit %s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runCommand(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve             Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  sync-run          Run a product sync against the WooCommerce storefront\n")
	fmt.Fprintf(os.Stderr, "  test-connections  Check WooCommerce, WordPress and OpenAI credentials\n")
	fmt.Fprintf(os.Stderr, "  enable-images     Enable syncing for every product that has an image\n")
	fmt.Fprintf(os.Stderr, "  version           Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
