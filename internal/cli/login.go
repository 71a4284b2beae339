package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// newLoginCmd checks credentials against the remote service. No session is
// kept; it is meant for verifying an account from a terminal.
func newLoginCmd(opts *options) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the remote service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(opts)
			if err := a.validator.Validate(creds); err != nil {
				return describe(err)
			}

			res, err := a.api.Login(cmd.Context(), creds.Username, creds.Password)
			if err != nil {
				return err
			}
			if !res.Success {
				msg := res.Message
				if msg == "" {
					msg = "Invalid credentials, please try again!"
				}
				return &domain.RejectedError{Kind: domain.ErrLoginRejected, Message: msg}
			}

			msg := res.Message
			if msg == "" {
				msg = "Login successful!"
			}
			return printResult(cmd, opts, res, func(w io.Writer) {
				fmt.Fprintln(w, msg)
			})
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username or email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password")
	return cmd
}
