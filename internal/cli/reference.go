package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/core/domain"
)

func newStatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List the states users can be registered in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := newApp(opts).reference.States(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, opts, states, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tNAME")
				for _, s := range states {
					fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
				}
				_ = tw.Flush()
			})
		},
	}
}

func newCitiesCmd(opts *options) *cobra.Command {
	var stateID int64

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List the cities of a state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cities, err := newApp(opts).reference.Cities(cmd.Context(), domain.ID(stateID))
			if err != nil {
				return err
			}
			return printResult(cmd, opts, cities, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tCITY")
				for _, c := range cities {
					fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.City)
				}
				_ = tw.Flush()
			})
		},
	}

	cmd.Flags().Int64Var(&stateID, "state-id", 0, "State id")
	_ = cmd.MarkFlagRequired("state-id")
	return cmd
}
