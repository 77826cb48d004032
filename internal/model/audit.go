package model

import "time"

// ExtractionRecord is the persisted audit row for one extraction call. The
// store keeps these so review queues can find low-confidence results after a
// bulk import; it is not the case record itself.
type ExtractionRecord struct {
	ID             string     `json:"id"`
	TicketID       int64      `json:"ticket_id"`
	Date           *time.Time `json:"date,omitempty"`
	Confidence     Confidence `json:"confidence"`
	Source         Source     `json:"source"`
	Method         Method     `json:"extraction_method"`
	SourceText     string     `json:"source_text,omitempty"`
	AIReasoning    string     `json:"ai_reasoning,omitempty"`
	RequiresReview bool       `json:"requires_review"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewExtractionRecord flattens an ExtractionResult into an audit row.
func NewExtractionRecord(id string, ticketID int64, res ExtractionResult, at time.Time) ExtractionRecord {
	return ExtractionRecord{
		ID:             id,
		TicketID:       ticketID,
		Date:           res.Date,
		Confidence:     res.Confidence,
		Source:         res.Source,
		Method:         res.Method,
		SourceText:     res.SourceText,
		AIReasoning:    res.AIReasoning,
		RequiresReview: res.RequiresReview,
		CreatedAt:      at,
	}
}
