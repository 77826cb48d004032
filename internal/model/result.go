package model

import "time"

// Confidence expresses how much a downstream consumer should trust an
// extracted date.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source identifies where the winning date came from.
type Source string

const (
	SourceVerified    Source = "verified"
	SourceExtracted   Source = "extracted"
	SourceAIExtracted Source = "ai_extracted"
	SourceFallback    Source = "fallback"
	SourceUnknown     Source = "unknown"
)

// Method identifies the extraction layer that produced the result. It is
// always set, even when no date was found, so audits can see which layer
// gave up.
type Method string

const (
	MethodCustomField Method = "custom_field"
	MethodRegex       Method = "regex"
	MethodAINLP       Method = "ai_nlp"
	MethodFallback    Method = "fallback"
)

// ValidationResult is the outcome of the date sanity check for a candidate.
type ValidationResult struct {
	Valid      bool       `json:"is_valid"`
	Reason     string     `json:"reason,omitempty"`
	Confidence Confidence `json:"confidence"`
	Source     Source     `json:"source"`
}

// ExtractionResult is the final, immutable outcome of one extraction call.
// Exactly one layer's candidate is represented; partial results from
// different layers are never merged.
type ExtractionResult struct {
	Date           *time.Time       `json:"date,omitempty"`
	Confidence     Confidence       `json:"confidence"`
	Source         Source           `json:"source"`
	Method         Method           `json:"extraction_method"`
	SourceText     string           `json:"source_text,omitempty"`
	AIReasoning    string           `json:"ai_reasoning,omitempty"`
	RequiresReview bool             `json:"requires_review"`
	Validation     ValidationResult `json:"validation_result"`
}

// NewExtractionResult assembles a result and derives RequiresReview from the
// confidence tier and validation outcome. RequiresReview is never set
// independently of those two inputs.
func NewExtractionResult(date *time.Time, conf Confidence, src Source, method Method, sourceText string, validation ValidationResult) ExtractionResult {
	return ExtractionResult{
		Date:           date,
		Confidence:     conf,
		Source:         src,
		Method:         method,
		SourceText:     sourceText,
		RequiresReview: conf == ConfidenceLow || !validation.Valid,
		Validation:     validation,
	}
}
