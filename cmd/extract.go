package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearcomp/claimdate/internal/model"
)

var extractAI bool

var extractCmd = &cobra.Command{
	Use:   "extract [ticket.json]",
	Short: "Extract the injury date from one ticket",
	Long:  "Reads a ticket JSON from the given file (or stdin) and prints the extraction result as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return eris.Wrapf(err, "open %s", args[0])
			}
			defer f.Close()
			in = f
		}

		var ticket model.TicketContext
		if err := json.NewDecoder(in).Decode(&ticket); err != nil {
			return eris.Wrap(err, "decode ticket")
		}
		if ticket.CreatedAt.IsZero() {
			return eris.New("ticket created_at is required")
		}

		if extractAI {
			cfg.Extraction.AIEnabled = true
		}

		extractor, err := buildExtractor(cfg, false)
		if err != nil {
			return err
		}

		result := extractor.Extract(cmd.Context(), ticket)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "encode result")
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractAI, "ai", false, "enable the AI extraction layer for this call")
	rootCmd.AddCommand(extractCmd)
}
