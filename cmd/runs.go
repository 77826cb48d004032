package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clearcomp/claimdate/internal/model"
	"github.com/clearcomp/claimdate/internal/store"
)

var (
	runsMethod string
	runsReview bool
	runsLimit  int
	runsJSON   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored extraction audit records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		filter := store.Filter{
			Method: model.Method(runsMethod),
			Limit:  runsLimit,
		}
		if cmd.Flags().Changed("review") {
			filter.RequiresReview = &runsReview
		}

		recs, err := st.ListExtractions(ctx, filter)
		if err != nil {
			return err
		}

		if runsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTICKET\tDATE\tCONFIDENCE\tMETHOD\tREVIEW")
		for _, rec := range recs {
			date := "-"
			if rec.Date != nil {
				date = rec.Date.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%v\n",
				rec.ID, rec.TicketID, date, rec.Confidence, rec.Method, rec.RequiresReview)
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsMethod, "method", "", "filter by extraction method")
	runsCmd.Flags().BoolVar(&runsReview, "review", false, "filter by requires-review flag")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "max records to list")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output JSON instead of a table")
	rootCmd.AddCommand(runsCmd)
}
