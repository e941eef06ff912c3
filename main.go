// Package main is the entry point for the ldcheck CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/libredomains/ldcheck/cmd"
)

func main() {
	// Create a context that is cancelled on SIGINT (Ctrl+C) so an
	// interrupted run still releases the report lock cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	root := cmd.NewRootCmd()
	os.Exit(cmd.RunCLIContext(ctx, root, os.Args[1:], os.Stdout, os.Stderr))
}
