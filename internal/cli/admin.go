package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/service"
	"github.com/roxiler/storerating-client/internal/forms"
)

const (
	msgUserCreated  = "User created successfully!"
	msgStoreCreated = "Store created successfully!"
	msgUserFailed   = "Failed to create user"
	msgStoreFailed  = "Failed to create store"
	msgDashboard    = "Error loading dashboard"
)

func newAdminCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer users and stores",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(cmd.Context()); err != nil {
				return err
			}
			_, err := a.require(domain.LandingRoute(domain.RoleAdmin))
			return err
		},
	}
	cmd.AddCommand(
		newAdminStatsCommand(a),
		newAdminUsersCommand(a),
		newAdminUserCommand(a),
		newAdminStoresCommand(a),
		newAdminOwnersCommand(a),
		newAdminAddUserCommand(a, false),
		newAdminAddUserCommand(a, true),
		newAdminAddStoreCommand(a),
	)
	return cmd
}

func newAdminStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show platform totals",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.admin.Stats(cmd.Context())
			if err != nil {
				return failed(err, msgDashboard)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Users:   %d\n", st.UsersCount)
			fmt.Fprintf(w, "Stores:  %d\n", st.StoresCount)
			fmt.Fprintf(w, "Ratings: %d\n", st.RatingsCount)
			return nil
		},
	}
}

func sortFlags(f *pflag.FlagSet, sortBy, order *string) {
	f.StringVar(sortBy, "sort", "", "column to sort by")
	f.StringVar(order, "order", "", "sort order (asc or desc)")
}

func newAdminUsersCommand(a *app) *cobra.Command {
	var filter domain.UserFilter
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Role = domain.Role(role)
			users, err := a.admin.Users(cmd.Context(), filter)
			if err != nil {
				return failed(err, "Error loading users")
			}
			writeUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&filter.Name, "name", "", "filter by name")
	f.StringVar(&filter.Email, "email", "", "filter by email")
	f.StringVar(&filter.Address, "address", "", "filter by address")
	f.StringVar(&role, "role", "", "filter by role (admin, owner or user)")
	sortFlags(f, &filter.SortBy, &filter.Order)
	return cmd
}

func newAdminUserCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "user <id>",
		Short: "Show one user",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return usagef("invalid user id %q", args[0])
			}
			u, err := a.admin.User(cmd.Context(), id)
			if err != nil {
				return failed(err, "Error loading user")
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:      %d\n", u.ID)
			fmt.Fprintf(w, "Name:    %s\n", u.Name)
			fmt.Fprintf(w, "Email:   %s\n", u.Email)
			fmt.Fprintf(w, "Address: %s\n", u.Address)
			fmt.Fprintf(w, "Role:    %s\n", u.Role)
			if u.Role == domain.RoleOwner {
				rating := u.Rating.String()
				if rating == "" {
					rating = "no ratings yet"
				}
				fmt.Fprintf(w, "Rating:  %s\n", rating)
			}
			return nil
		},
	}
}

func newAdminStoresCommand(a *app) *cobra.Command {
	var filter domain.StoreFilter
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List stores",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, err := a.admin.Stores(cmd.Context(), filter)
			if err != nil {
				return failed(err, "Error loading stores")
			}
			writeAdminStores(cmd.OutOrStdout(), stores)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&filter.Name, "name", "", "filter by name")
	f.StringVar(&filter.Email, "email", "", "filter by email")
	f.StringVar(&filter.Address, "address", "", "filter by address")
	sortFlags(f, &filter.SortBy, &filter.Order)
	return cmd
}

func newAdminOwnersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owners",
		Short: "List the accounts that may own a store",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.admin.OwnerCandidates(cmd.Context())
			if err != nil {
				return &commandError{err: err, shown: service.OwnersError(err)}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tNAME\tEMAIL\tROLE")
			for _, u := range c.Owners {
				mark := ""
				if u.ID == c.Default.ID {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", mark, u.ID, u.Name, u.Email, u.Role)
			}
			return w.Flush()
		},
	}
}

// newAdminAddUserCommand builds add-user, or add-owner when owner is set.
func newAdminAddUserCommand(a *app, owner bool) *cobra.Command {
	var form forms.UserForm
	var role string
	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Create an account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				u   *domain.User
				err error
			)
			if owner {
				u, err = a.admin.AddOwner(cmd.Context(), form)
			} else {
				form.Role = domain.Role(role)
				u, err = a.admin.AddUser(cmd.Context(), form)
			}
			if err != nil {
				return failed(err, msgUserFailed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgUserCreated)
			fmt.Fprintf(cmd.OutOrStdout(), "ID %d: %s (%s)\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "full name (20 to 60 characters)")
	f.StringVar(&form.Email, "email", "", "account email")
	f.StringVar(&form.Password, "password", "", "initial password")
	f.StringVar(&form.Address, "address", "", "postal address")
	if owner {
		cmd.Use = "add-owner"
		cmd.Short = "Create a store owner account"
	} else {
		f.StringVar(&role, "role", string(domain.RoleUser), "admin, owner or user")
	}
	return cmd
}

func newAdminAddStoreCommand(a *app) *cobra.Command {
	var form forms.StoreForm
	cmd := &cobra.Command{
		Use:   "add-store",
		Short: "Create a store",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.admin.AddStore(cmd.Context(), form)
			if errors.Is(err, service.ErrNoOwners) {
				return &commandError{err: err, shown: service.OwnersError(err)}
			}
			if err != nil {
				return failed(err, msgStoreFailed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msgStoreCreated)
			fmt.Fprintf(cmd.OutOrStdout(), "ID %d: %s\n", st.ID, st.Name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "store name (20 to 60 characters)")
	f.StringVar(&form.Email, "email", "", "store email")
	f.StringVar(&form.Address, "address", "", "store address")
	f.Int64Var(&form.OwnerID, "owner", 0, "owner user id (defaults to "+service.DefaultOwnerEmail+" or the first owner)")
	return cmd
}

func writeUsers(out io.Writer, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(out, "No users found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADDRESS\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Address, u.Role)
	}
	w.Flush()
}

func writeAdminStores(out io.Writer, stores []domain.AdminStore) {
	if len(stores) == 0 {
		fmt.Fprintln(out, "No stores found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tADDRESS\tOWNER\tRATING\tRATINGS")
	for _, s := range stores {
		rating := s.AverageRating.String()
		if rating == "" {
			rating = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, s.Address, s.OwnerName, rating, s.RatingCount)
	}
	w.Flush()
}
