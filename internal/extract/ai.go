package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/model"
	"github.com/clearcomp/claimdate/pkg/nlp"
)

// aiStrategy delegates to the external text-understanding service when the
// decider judges the corpus worth the cost. Any collaborator failure is
// logged and treated as "no result" so the call degrades to the fallback
// layer instead of aborting.
type aiStrategy struct {
	cfg    Config
	rules  Rules
	client nlp.Client
}

func newAIStrategy(cfg Config, rules Rules, client nlp.Client) *aiStrategy {
	return &aiStrategy{cfg: cfg, rules: rules, client: client}
}

func (s *aiStrategy) Name() string { return "ai_nlp" }

func (s *aiStrategy) Attempt(ctx context.Context, req *Request) *model.ExtractionResult {
	if s.client == nil || !shouldUseAI(req.Corpus, req.Prior, s.cfg.AIEnabled, s.rules) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.AITimeout)
	defer cancel()

	aiRes, err := s.client.ExtractInjuryDate(ctx, nlp.Request{
		Corpus:        req.Corpus,
		ReferenceDate: req.Ticket.CreatedAt,
		WorkerName:    req.Ticket.WorkerName,
		CompanyName:   req.Ticket.CompanyName,
	})
	if err != nil {
		zap.L().Warn("ai extraction failed",
			zap.Int64("ticket_id", req.Ticket.ID),
			zap.Error(err),
		)
		return nil
	}

	if aiRes.Date == nil {
		zap.L().Debug("ai found no injury date",
			zap.Int64("ticket_id", req.Ticket.ID),
			zap.String("reasoning", aiRes.Reasoning),
		)
		return nil
	}

	date := truncateToDay(*aiRes.Date)
	validation := ValidateDate(date, req.Ticket.CreatedAt, req.Now)
	if !validation.Valid {
		zap.L().Warn("ai date rejected",
			zap.Int64("ticket_id", req.Ticket.ID),
			zap.String("date", date.Format("2006-01-02")),
			zap.String("reason", validation.Reason),
		)
		// A prior layer's valid candidate stands; otherwise surface the AI
		// reasoning on a date-less, review-flagged result so the audit trail
		// keeps it.
		if req.Prior != nil && req.Prior.Date != nil && req.Prior.Validation.Valid {
			return nil
		}
		res := model.NewExtractionResult(nil, model.ConfidenceLow, model.SourceUnknown, model.MethodAINLP, aiRes.SourceText, validation)
		res.AIReasoning = aiRes.Reasoning
		return &res
	}

	conf := confidenceFromNLP(aiRes.Confidence)
	res := model.NewExtractionResult(&date, conf, model.SourceAIExtracted, model.MethodAINLP, aiRes.SourceText, validation)
	res.AIReasoning = aiRes.Reasoning
	return &res
}

func confidenceFromNLP(c string) model.Confidence {
	switch c {
	case nlp.ConfidenceHigh:
		return model.ConfidenceHigh
	case nlp.ConfidenceMedium:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
