// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/audsched"
	"github.com/ik5/audsched/engine"
	"github.com/ik5/audsched/project"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "render <project.yaml>",
		Short: "Render a project to a WAV file",
		Long: `Render a project to a WAV file.

The output defaults to the project path with a .wav extension. Source
errors that only affect a single frame are logged and skipped unless
--strict is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			p, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, p.Close()) }()

			e, err := p.Engine(engine.WithLogger(a.logger))
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".wav"
			}
			out, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, out.Close()) }()

			f := p.File()
			opts := []audsched.Option{audsched.WithLogger(a.logger)}
			if f.BitDepth != 0 {
				opts = append(opts, audsched.WithBitDepth(f.BitDepth))
			}
			if f.Channels != 0 {
				opts = append(opts, audsched.WithChannels(f.Channels))
			}
			if strict {
				opts = append(opts, audsched.WithStrict())
			}

			res, err := audsched.RenderWAV(cmd.Context(), e, out, f.SampleRate, opts...)
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %d channels, digest %016x\n",
				output, res.Frames, res.Channels, res.Digest)
			if res.OnceErrors > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %d source errors\n", res.OnceErrors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output WAV path")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first source error")
	return cmd
}

func (a *app) load(path string) (*project.Project, error) {
	f, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Build(project.NewCatalog(f.Dir(), a.logger), project.WithLogger(a.logger))
}
