// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

type app struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "audsched",
		Short: "Sample-accurate event scheduler and mixer",
		Long: `audsched - drive instruments from text patterns and render them to WAV.

A project file declares instruments (samplers, oscillators) and tracks
that schedule events for them on a fixed grid.

Examples:
  # Render song.yaml to song.wav
  audsched render song.yaml

  # Show what every track schedules
  audsched parse song.yaml

  # Read the manual of the sampler
  audsched instruments sampler`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug records")

	root.AddCommand(
		newRenderCmd(a),
		newParseCmd(a),
		newInstrumentsCmd(a),
	)
	return root
}

// Execute runs the root command until ctx is done.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
