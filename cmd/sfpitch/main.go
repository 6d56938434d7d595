// SPDX-License-Identifier: EPL-2.0

// Package main is the entry point for the sfpitch CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
