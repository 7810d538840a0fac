// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audsched/instrument"
	"github.com/ik5/audsched/project"
)

func newInstrumentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "instruments [name]",
		Short: "List instruments or show one manual",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := project.NewCatalog(".", a.logger)

			if len(args) == 0 {
				for _, name := range catalog.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			f, ok := catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", instrument.ErrUnknownInstrument, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Manual())
			return nil
		},
	}
}
