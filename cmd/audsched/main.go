// SPDX-License-Identifier: EPL-2.0

// Command audsched renders YAML projects to WAV files.
//
// Usage:
//
//	audsched [flags] <command> [args]
//
// Commands:
//
//	render       - Render a project to a WAV file
//	parse        - Print the events every track schedules
//	instruments  - List instruments or show one manual
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ik5/audsched/cmd/audsched/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
