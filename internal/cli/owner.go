package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roxiler/storerating-client/internal/core/domain"
)

func newOwnerCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Store owner dashboard",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show your store's average rating and who rated it",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.require(domain.LandingRoute(domain.RoleOwner)); err != nil {
				return err
			}
			d, err := a.owner.Dashboard(cmd.Context())
			if err != nil {
				return failed(err, msgDashboard)
			}

			out := cmd.OutOrStdout()
			avg := d.AverageRating.String()
			if avg == "" {
				avg = "no ratings yet"
			}
			fmt.Fprintf(out, "Store:   %s\n", d.Store)
			fmt.Fprintf(out, "Average: %s (%d ratings)\n", avg, d.RatingCount)
			if len(d.Raters) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMAIL\tRATING\tDATE")
			for _, r := range d.Raters {
				date := ""
				if !r.CreatedAt.IsZero() {
					date = r.CreatedAt.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Name, r.Email, r.Rating, date)
			}
			return w.Flush()
		},
	})
	return cmd
}
