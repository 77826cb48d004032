package extract

import (
	"strings"

	"github.com/clearcomp/claimdate/internal/model"
)

// shouldUseAI decides whether the expensive AI layer is worth running. It is
// a pure predicate over the corpus and the cheaper layers' outcome: the AI
// call only happens when the text plausibly contains a date the regex
// families could not pin down with high confidence.
func shouldUseAI(corpus string, prior *model.ExtractionResult, enabled bool, rules Rules) bool {
	if !enabled {
		return false
	}
	if prior != nil && prior.Confidence == model.ConfidenceHigh {
		return false
	}

	lower := strings.ToLower(corpus)
	priorLow := prior == nil || prior.Confidence == model.ConfidenceLow

	switch {
	case strings.Contains(corpus, "@"):
		// Email content tends to bury the date in prose.
		return true
	case len(corpus) > rules.LongCorpusChars:
		return true
	case priorLow && len(corpus) > rules.LowConfCorpusChars:
		return true
	case containsAny(lower, rules.TemporalKeywords):
		return true
	case containsAny(lower, rules.MedicalKeywords):
		return true
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
