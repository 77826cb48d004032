package extract

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/model"
	"github.com/clearcomp/claimdate/pkg/nlp"
)

// Anchor selects the reference point for resolving relative-date phrases
// ("3 weeks ago", "last Friday"). Anchoring at the moment of extraction makes
// reprocessing an old ticket drift, so the choice is explicit configuration.
type Anchor string

const (
	AnchorNow     Anchor = "now"
	AnchorCreated Anchor = "created"
)

// Config holds the pipeline's behavioral knobs. It is fixed at construction;
// the extractor never reads ambient state mid-call.
type Config struct {
	AIEnabled      bool
	RelativeAnchor Anchor
	AITimeout      time.Duration
}

// Request carries per-call state through the strategy chain. Prior holds the
// best candidate produced so far, so later strategies (the AI gate in
// particular) can see what the cheaper layers achieved.
type Request struct {
	Ticket model.TicketContext
	Corpus string
	Now    time.Time
	Prior  *model.ExtractionResult
}

// Strategy is one extraction layer. Attempt returns nil when the layer has
// nothing usable, in which case the next strategy runs.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, req *Request) *model.ExtractionResult
}

// Extractor runs the layered extraction cascade for one ticket. It is
// immutable after construction and safe for concurrent use across tickets.
type Extractor struct {
	cfg        Config
	rules      Rules
	strategies []Strategy
	now        func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithNow fixes the clock for testing.
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New builds an extractor. client may be nil when AI extraction is disabled.
func New(cfg Config, rules Rules, client nlp.Client, opts ...Option) *Extractor {
	if cfg.RelativeAnchor == "" {
		cfg.RelativeAnchor = AnchorNow
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 20 * time.Second
	}

	e := &Extractor{
		cfg:   cfg,
		rules: rules,
		now:   time.Now,
	}
	e.strategies = []Strategy{
		newCustomFieldStrategy(rules.CustomFieldKeys),
		newPatternStrategy(rules, cfg.RelativeAnchor),
		newAIStrategy(cfg, rules, client),
		newFallbackStrategy(),
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract resolves the injury date for one ticket. It never returns an
// error: every failure mode inside a layer degrades to the next layer, and
// the fallback layer cannot fail given a ticket creation timestamp, so a
// batch caller can process thousands of tickets without one malformed record
// aborting the run.
func (e *Extractor) Extract(ctx context.Context, ticket model.TicketContext) model.ExtractionResult {
	req := &Request{
		Ticket: ticket,
		Corpus: BuildCorpus(ticket),
		Now:    e.now().UTC(),
	}

	for _, s := range e.strategies {
		res := s.Attempt(ctx, req)
		if res == nil {
			continue
		}

		if res.Confidence == model.ConfidenceHigh && res.Date != nil {
			zap.L().Debug("extraction resolved",
				zap.Int64("ticket_id", ticket.ID),
				zap.String("strategy", s.Name()),
				zap.String("confidence", string(res.Confidence)),
			)
			return *res
		}

		// Keep the candidate; a later layer may supersede it.
		req.Prior = res
	}

	// The fallback strategy guarantees a non-nil prior with a date.
	res := *req.Prior
	if res.RequiresReview {
		zap.L().Info("extraction needs review",
			zap.Int64("ticket_id", ticket.ID),
			zap.String("method", string(res.Method)),
			zap.String("confidence", string(res.Confidence)),
		)
	}
	return res
}
