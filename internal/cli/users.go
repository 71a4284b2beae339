package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/listview"
)

func newUsersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and edit users",
	}
	cmd.AddCommand(newUsersListCmd(opts), newUsersEditCmd(opts))
	return cmd
}

func newUsersListCmd(opts *options) *cobra.Command {
	var (
		query    string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally filtered by name, email or mobile",
		Example: `  admin-console users list
  admin-console users list --query ali --page 2 --page-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(opts)
			if err := a.users.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("load users: %w", err)
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = opts.cfg.PageSize
			}

			ctrl := listview.NewController(a.store, listview.WithQuery(query), listview.WithPage(page, pageSize))
			defer ctrl.Close()
			v := ctrl.View()
			for i := range v.Items {
				v.Items[i].Password = ""
			}

			return printResult(cmd, opts, v, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tMOBILE\tROLE\tSTATUS")
				for _, u := range v.Items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", u.UserID, u.Name, u.Email, u.Mobile, u.RoleID.Label(), u.Status.Label())
				}
				_ = tw.Flush()
				fmt.Fprintf(w, "\npage %d of %d (%d users)\n", v.Page.Page, v.Pages, v.Total)
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search over name, email and mobile")
	cmd.Flags().IntVar(&page, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", listview.DefaultPageSize, "Rows per page (default: $PAGE_SIZE)")
	return cmd
}

func newUsersEditCmd(opts *options) *cobra.Command {
	var (
		edit    domain.UserEdit
		role    int
		status  int
		stateID int64
		cityID  int64
	)

	cmd := &cobra.Command{
		Use:   "edit <user-id>",
		Short: "Edit a user; unset flags keep their current value",
		Example: `  admin-console users edit 12 --status 2
  admin-console users edit 12 --state-id 3 --city-id 31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			id := domain.ID(n)

			a := newApp(opts)
			if err := a.users.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("load users: %w", err)
			}
			current, err := a.users.Find(id)
			if err != nil {
				return fmt.Errorf("user %s: %w", id, err)
			}

			merged := domain.UserEdit{
				Name:    current.Name,
				Email:   current.Email,
				Mobile:  current.Mobile,
				RoleID:  current.RoleID,
				Status:  current.Status,
				StateID: current.StateID,
				CityID:  current.CityID,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = edit.Name
			}
			if flags.Changed("email") {
				merged.Email = edit.Email
			}
			if flags.Changed("mobile") {
				merged.Mobile = edit.Mobile
			}
			if flags.Changed("role") {
				merged.RoleID = domain.Role(role)
			}
			if flags.Changed("status") {
				merged.Status = domain.Status(status)
			}
			if flags.Changed("state-id") {
				merged.StateID = domain.ID(stateID)
			}
			if flags.Changed("city-id") {
				merged.CityID = domain.ID(cityID)
			}

			updated, err := a.users.Edit(cmd.Context(), "cli", id, merged)
			if err != nil {
				return describe(err)
			}
			updated.Password = ""

			return printResult(cmd, opts, updated, func(w io.Writer) {
				fmt.Fprintf(w, "User updated successfully! %s <%s> is now %s, %s\n",
					updated.Name, updated.Email, updated.RoleID.Label(), updated.Status.Label())
			})
		},
	}

	cmd.Flags().StringVar(&edit.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&edit.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&edit.Mobile, "mobile", "", "10-digit mobile number")
	cmd.Flags().IntVar(&role, "role", 0, "Role: 1=User, 2=Admin")
	cmd.Flags().IntVar(&status, "status", 0, "Status: 1=Inactive, 2=Active")
	cmd.Flags().Int64Var(&stateID, "state-id", 0, "State id")
	cmd.Flags().Int64Var(&cityID, "city-id", 0, "City id")
	return cmd
}
