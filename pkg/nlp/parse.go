package nlp

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// cleanJSON strips markdown code fences and any prose around the JSON
// object. Models occasionally wrap their answer despite instructions.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// parseResult decodes the model's JSON answer into a Result. A null or
// malformed date field yields a nil Date rather than an error; an
// unparseable body is an error.
func parseResult(text string) (*Result, error) {
	cleaned := cleanJSON(text)

	var raw struct {
		Date       *string `json:"date"`
		Confidence string  `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
		SourceText string  `json:"source_text"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, eris.Wrap(err, "unmarshal answer")
	}

	res := &Result{
		Confidence: normalizeConfidence(raw.Confidence),
		Reasoning:  raw.Reasoning,
		SourceText: raw.SourceText,
	}

	if raw.Date != nil && *raw.Date != "" {
		if d, err := time.Parse("2006-01-02", *raw.Date); err == nil {
			d = d.UTC()
			res.Date = &d
		}
	}

	return res, nil
}

func normalizeConfidence(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
