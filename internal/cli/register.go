package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/core/domain"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var (
		reg     domain.Registration
		stateID int64
		cityID  int64
	)

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Register a new user",
		Example: `  admin-console register --name Erin --email erin@example.com --mobile 9998887776 --password secret1 --state-id 3 --city-id 31`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg.StateID = domain.ID(stateID)
			reg.CityID = domain.ID(cityID)

			res, err := newApp(opts).registration.Register(cmd.Context(), reg)
			if err != nil {
				return describe(err)
			}

			msg := res.Message
			if msg == "" {
				msg = "User registered successfully!"
			}
			return printResult(cmd, opts, res, func(w io.Writer) {
				fmt.Fprintln(w, msg)
			})
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&reg.Mobile, "mobile", "", "10-digit mobile number")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().Int64Var(&stateID, "state-id", 0, "State id (see: admin-console states)")
	cmd.Flags().Int64Var(&cityID, "city-id", 0, "City id (see: admin-console cities --state-id N)")
	return cmd
}
