package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearcomp/claimdate/internal/model"
)

func mediumPrior() *model.ExtractionResult {
	return &model.ExtractionResult{Confidence: model.ConfidenceMedium}
}

func TestShouldUseAI_DisabledAlwaysFalse(t *testing.T) {
	rules := DefaultRules()
	assert.False(t, shouldUseAI("worker@example.com emailed about workcover claim since the injury", nil, false, rules))
}

func TestShouldUseAI_HighConfidencePriorSkips(t *testing.T) {
	rules := DefaultRules()
	prior := &model.ExtractionResult{Confidence: model.ConfidenceHigh}
	assert.False(t, shouldUseAI(strings.Repeat("x", 2000), prior, true, rules))
}

func TestShouldUseAI_EmailMarker(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, shouldUseAI("forwarded from nurse@clinic.com.au", mediumPrior(), true, rules))
}

func TestShouldUseAI_LongCorpus(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, shouldUseAI(strings.Repeat("x", 501), mediumPrior(), true, rules))
	assert.False(t, shouldUseAI(strings.Repeat("x", 500), mediumPrior(), true, rules))
}

func TestShouldUseAI_LowConfidenceShorterGate(t *testing.T) {
	rules := DefaultRules()
	corpus := strings.Repeat("x", 150)

	// No prior at all counts as low confidence.
	assert.True(t, shouldUseAI(corpus, nil, true, rules))
	assert.False(t, shouldUseAI(corpus, mediumPrior(), true, rules))
}

func TestShouldUseAI_TemporalKeyword(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, shouldUseAI("it happened a while back, shortly after the shift", mediumPrior(), true, rules))
}

func TestShouldUseAI_MedicalKeyword(t *testing.T) {
	rules := DefaultRules()
	assert.True(t, shouldUseAI("attached the Medical Certificate from the GP", mediumPrior(), true, rules))
	assert.True(t, shouldUseAI("lodged with WorkCover QLD", mediumPrior(), true, rules))
}

func TestShouldUseAI_PlainShortTextSkips(t *testing.T) {
	rules := DefaultRules()
	assert.False(t, shouldUseAI("short note, nothing temporal", mediumPrior(), true, rules))
}
