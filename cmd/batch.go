package main

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/batch"
	"github.com/clearcomp/claimdate/internal/model"
)

var (
	batchOut     string
	batchNoAudit bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <tickets.jsonl>",
	Short: "Extract injury dates for a file of tickets",
	Long:  "Reads one ticket JSON per line, runs extractions concurrently, writes one result JSON per line, and records audit rows in the store.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tickets, err := readTickets(args[0])
		if err != nil {
			return err
		}
		if len(tickets) == 0 {
			return eris.New("no tickets in input")
		}

		extractor, err := buildExtractor(cfg, true)
		if err != nil {
			return err
		}

		proc := batch.NewProcessor(extractor, nil, cfg.Batch.MaxConcurrent)
		if !batchNoAudit {
			st, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()
			proc = batch.NewProcessor(extractor, st, cfg.Batch.MaxConcurrent)
		}

		outcomes, summary := proc.Run(ctx, tickets)

		out := os.Stdout
		if batchOut != "" {
			f, err := os.Create(batchOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", batchOut)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		for _, o := range outcomes {
			if err := enc.Encode(o); err != nil {
				return eris.Wrap(err, "encode outcome")
			}
		}

		zap.L().Info("batch summary",
			zap.Int("total", summary.Total),
			zap.Int("requires_review", summary.RequiresReview),
			zap.Any("by_method", summary.ByMethod),
		)
		return nil
	},
}

// readTickets loads one TicketContext JSON per line, skipping blank lines.
// A malformed line fails the load up front rather than mid-batch.
func readTickets(path string) ([]model.TicketContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var tickets []model.TicketContext
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Bytes()
		if len(text) == 0 {
			continue
		}
		var t model.TicketContext
		if err := json.Unmarshal(text, &t); err != nil {
			return nil, eris.Wrapf(err, "parse ticket at line %d", line)
		}
		if t.CreatedAt.IsZero() {
			return nil, eris.Errorf("ticket at line %d has no created_at", line)
		}
		tickets = append(tickets, t)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	return tickets, nil
}

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "write results to file instead of stdout")
	batchCmd.Flags().BoolVar(&batchNoAudit, "no-audit", false, "skip writing audit records to the store")
	rootCmd.AddCommand(batchCmd)
}
