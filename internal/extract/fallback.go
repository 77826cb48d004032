package extract

import (
	"context"

	"github.com/clearcomp/claimdate/internal/model"
)

// fallbackStrategy defaults to the ticket's own creation timestamp when no
// earlier layer produced a valid date. The creation timestamp is always
// present by contract, so this layer cannot fail and the pipeline as a whole
// always yields a date.
type fallbackStrategy struct{}

func newFallbackStrategy() *fallbackStrategy { return &fallbackStrategy{} }

func (s *fallbackStrategy) Name() string { return "fallback" }

func (s *fallbackStrategy) Attempt(_ context.Context, req *Request) *model.ExtractionResult {
	if req.Prior != nil && req.Prior.Date != nil && req.Prior.Validation.Valid {
		return nil
	}

	date := truncateToDay(req.Ticket.CreatedAt.UTC())
	validation := model.ValidationResult{
		Valid:      true,
		Confidence: model.ConfidenceLow,
		Source:     model.SourceFallback,
	}
	res := model.NewExtractionResult(&date, model.ConfidenceLow, model.SourceFallback, model.MethodFallback, "", validation)
	if req.Prior != nil && req.Prior.AIReasoning != "" {
		// Keep the AI's explanation on record even though its date was
		// unusable.
		res.AIReasoning = req.Prior.AIReasoning
	}
	return &res
}
