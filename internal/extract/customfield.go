package extract

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/model"
)

// customFieldLayouts are the formats the upstream ticketing system has been
// observed to store structured dates in.
var customFieldLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"02-01-2006",
}

// customFieldStrategy reads the explicit structured injury-date field. A
// parseable, in-range value here is the most trusted signal the system has
// and short-circuits every later layer.
type customFieldStrategy struct {
	keys []string
}

func newCustomFieldStrategy(keys []string) *customFieldStrategy {
	return &customFieldStrategy{keys: keys}
}

func (s *customFieldStrategy) Name() string { return "custom_field" }

func (s *customFieldStrategy) Attempt(_ context.Context, req *Request) *model.ExtractionResult {
	raw := strings.TrimSpace(req.Ticket.CustomField(s.keys...))
	if raw == "" {
		return nil
	}

	var parsed time.Time
	ok := false
	for _, layout := range customFieldLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			parsed = truncateToDay(t)
			ok = true
			break
		}
	}
	if !ok {
		zap.L().Debug("custom field date unparseable",
			zap.Int64("ticket_id", req.Ticket.ID),
			zap.String("value", raw),
		)
		return nil
	}

	validation := ValidateDate(parsed, req.Ticket.CreatedAt, req.Now)
	if !validation.Valid {
		zap.L().Debug("custom field date rejected",
			zap.Int64("ticket_id", req.Ticket.ID),
			zap.String("value", raw),
			zap.String("reason", validation.Reason),
		)
		return nil
	}

	res := model.NewExtractionResult(&parsed, model.ConfidenceHigh, model.SourceVerified, model.MethodCustomField, raw, validation)
	return &res
}
