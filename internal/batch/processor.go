// Package batch runs the extraction pipeline over many tickets concurrently.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clearcomp/claimdate/internal/extract"
	"github.com/clearcomp/claimdate/internal/model"
	"github.com/clearcomp/claimdate/internal/store"
)

// Outcome pairs a ticket with its extraction result.
type Outcome struct {
	TicketID int64                  `json:"ticket_id"`
	Result   model.ExtractionResult `json:"result"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total          int            `json:"total"`
	ByMethod       map[string]int `json:"by_method"`
	RequiresReview int            `json:"requires_review"`
}

// Processor fans tickets out over the extractor with bounded concurrency and
// optionally persists audit records. The extraction contract guarantees one
// malformed ticket cannot abort the batch.
type Processor struct {
	extractor   *extract.Extractor
	store       store.Store // nil disables audit persistence
	concurrency int
}

// NewProcessor builds a processor. st may be nil.
func NewProcessor(extractor *extract.Extractor, st store.Store, concurrency int) *Processor {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Processor{extractor: extractor, store: st, concurrency: concurrency}
}

// Run processes all tickets and returns outcomes in input order. Audit
// persistence failures are logged, never fatal: losing one audit row is
// preferable to losing the batch.
func (p *Processor) Run(ctx context.Context, tickets []model.TicketContext) ([]Outcome, Summary) {
	outcomes := make([]Outcome, len(tickets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	var mu sync.Mutex
	for i, ticket := range tickets {
		i, ticket := i, ticket
		g.Go(func() error {
			res := p.extractor.Extract(gctx, ticket)

			mu.Lock()
			outcomes[i] = Outcome{TicketID: ticket.ID, Result: res}
			mu.Unlock()

			if p.store != nil {
				rec := model.NewExtractionRecord(uuid.New().String(), ticket.ID, res, time.Now().UTC())
				if err := p.store.SaveExtraction(gctx, rec); err != nil {
					zap.L().Warn("batch: save audit record failed",
						zap.Int64("ticket_id", ticket.ID),
						zap.Error(err),
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Total: len(tickets), ByMethod: make(map[string]int)}
	for _, o := range outcomes {
		summary.ByMethod[string(o.Result.Method)]++
		if o.Result.RequiresReview {
			summary.RequiresReview++
		}
	}

	zap.L().Info("batch complete",
		zap.Int("total", summary.Total),
		zap.Int("requires_review", summary.RequiresReview),
	)
	return outcomes, summary
}
