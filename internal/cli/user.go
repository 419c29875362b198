package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/forms"
)

// ── User dashboard ──

func newStoresCommand(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List stores with their ratings and your own",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.require(domain.LandingRoute(domain.RoleUser)); err != nil {
				return err
			}
			if err := a.board.Load(cmd.Context(), search); err != nil {
				return noticed(err, &a.board.Notice)
			}
			writeStores(cmd.OutOrStdout(), a.board.Stores())
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filter by store name or address")
	return cmd
}

func newRateCommand(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "rate <store-id> <1-5>",
		Short: "Rate a store, or change your rating",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.require(domain.LandingRoute(domain.RoleUser)); err != nil {
				return err
			}
			form, err := parseRating(args)
			if err != nil {
				return err
			}
			if err := forms.NewValidator().Validate(form); err != nil {
				return failed(err, "Invalid rating")
			}

			ctx := cmd.Context()
			if err := a.board.Load(ctx, search); err != nil {
				return noticed(err, &a.board.Notice)
			}
			decision, err := a.ratings.SubmitByID(ctx, form.StoreID, form.Rating)
			if err != nil {
				return noticed(err, &a.board.Notice)
			}

			out := cmd.OutOrStdout()
			if decision == domain.DecisionNoop {
				fmt.Fprintf(out, "Store %d is already rated %d\n", form.StoreID, form.Rating)
				return nil
			}
			switch level, text := a.board.Notice.Get(); level {
			case forms.NoticeInfo:
				fmt.Fprintln(out, text)
			case forms.NoticeError:
				fmt.Fprintln(out, "Rating saved")
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", text)
				return nil
			}
			writeStores(out, a.board.Stores())
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "search term the store list is loaded with")
	return cmd
}

func parseRating(args []string) (forms.RatingForm, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return forms.RatingForm{}, usagef("invalid store id %q", args[0])
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		return forms.RatingForm{}, usagef("invalid rating %q", args[1])
	}
	return forms.RatingForm{StoreID: id, Rating: v}, nil
}

func writeStores(out io.Writer, stores []domain.Store) {
	if len(stores) == 0 {
		fmt.Fprintln(out, "No stores found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tOVERALL\tRATINGS\tYOURS")
	for _, s := range stores {
		overall := s.OverallRating.String()
		if overall == "" {
			overall = "-"
		}
		yours := "-"
		if v, ok := domain.PriorRatingOf(s).Exists(); ok {
			yours = strconv.Itoa(v)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Address, overall, s.RatingCount, yours)
	}
	w.Flush()
}
