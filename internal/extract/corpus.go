package extract

import (
	"strings"

	"github.com/clearcomp/claimdate/internal/model"
)

// BuildCorpus concatenates every free-text source on the ticket into the
// single text the pattern and AI layers operate on. Sources are joined in
// thread order; the result is trimmed so an all-empty ticket yields "".
func BuildCorpus(t model.TicketContext) string {
	parts := make([]string, 0, 2+len(t.Conversations)+len(t.Attachments))
	if t.Subject != "" {
		parts = append(parts, t.Subject)
	}
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	for _, c := range t.Conversations {
		if c != "" {
			parts = append(parts, c)
		}
	}
	for _, a := range t.Attachments {
		if a != "" {
			parts = append(parts, a)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
