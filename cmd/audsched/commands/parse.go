// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <project.yaml>",
		Short: "Print the events every track schedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			p, err := a.load(args[0])
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, p.Close()) }()

			f := p.File()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TRACK\tINSTRUMENT\tPOSITION\tFRAME\tEVENT")
			for i, t := range f.Tracks {
				pairs, _ := p.Events(i)
				for _, pair := range pairs {
					fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\n", i, t.Instrument, pair.Position, pair.Position*f.Interval, pair.Event.Value)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "duration: %d frames\n", p.Duration())
			return nil
		},
	}
}
