// Package store persists extraction audit records so review queues can find
// low-confidence results after a bulk import.
package store

import (
	"context"

	"github.com/clearcomp/claimdate/internal/model"
)

// Filter specifies criteria for listing extraction records.
type Filter struct {
	TicketID       int64        `json:"ticket_id,omitempty"`
	Method         model.Method `json:"method,omitempty"`
	RequiresReview *bool        `json:"requires_review,omitempty"`
	Limit          int          `json:"limit,omitempty"`
	Offset         int          `json:"offset,omitempty"`
}

// Store defines the persistence interface for extraction audit records.
type Store interface {
	SaveExtraction(ctx context.Context, rec model.ExtractionRecord) error
	GetExtraction(ctx context.Context, id string) (*model.ExtractionRecord, error)
	ListExtractions(ctx context.Context, filter Filter) ([]model.ExtractionRecord, error)
	CountByMethod(ctx context.Context) (map[string]int, error)

	Migrate(ctx context.Context) error
	Close() error
}
