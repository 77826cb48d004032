// Package nlp wraps the external text-understanding service behind the one
// operation the extraction pipeline needs: pulling an injury date out of
// free text.
package nlp

import (
	"context"
	"time"
)

// Confidence tiers reported by the service.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Request carries the corpus and the context that helps the model anchor
// relative phrasing. Worker and company names enrich the prompt only; they
// are never parsed for dates.
type Request struct {
	Corpus        string
	ReferenceDate time.Time
	WorkerName    string
	CompanyName   string
}

// Result is the service's answer. Date is nil when the model found no
// injury date in the text.
type Result struct {
	Date       *time.Time
	Confidence string
	Reasoning  string
	SourceText string
}

// Client is the narrow interface the pipeline depends on. Implementations
// may call the network; callers bound each call with a context timeout.
type Client interface {
	ExtractInjuryDate(ctx context.Context, req Request) (*Result, error)
}
