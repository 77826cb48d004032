package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clearcomp/claimdate/internal/model"
)

// dateFrag matches any date form the generic parsers understand: day-first
// numeric, ISO, and textual-month variants. Captured as one group and handed
// to parseAnyDate.
const dateFrag = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}` +
	`|\d{4}-\d{2}-\d{2}` +
	`|\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9}\.?,?\s+\d{4}` +
	`|[A-Za-z]{3,9}\s+\d{1,2}(?:st|nd|rd|th)?,?\s*\d{4})`

var (
	reISO       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reDayFirst  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	reDayMonth  = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]{3,9})\.?,?\s+(\d{4})$`)
	reMonthDay  = regexp.MustCompile(`^([A-Za-z]{3,9})\s+(\d{1,2})(?:st|nd|rd|th)?,?\s*(\d{4})$`)
	reISOLoose  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reNumLoose  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reTextLoose = regexp.MustCompile(`\b(?:\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9}\.?,?\s+\d{4}|[A-Za-z]{3,9}\s+\d{1,2}(?:st|nd|rd|th)?,?\s*\d{4})\b`)
)

// parseAnyDate parses a single date mention in any supported format.
// Numeric forms are day-first; impossible calendar values fail.
func parseAnyDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if m := reISO.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return makeDate(y, mo, d)
	}
	if m := reDayFirst.FindStringSubmatch(s); m != nil {
		return parseDayFirst(m[1], m[2], m[3])
	}
	if m := reDayMonth.FindStringSubmatch(s); m != nil {
		month, ok := parseMonthName(m[2])
		if !ok {
			return time.Time{}, false
		}
		d, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[3])
		return makeDate(y, int(month), d)
	}
	if m := reMonthDay.FindStringSubmatch(s); m != nil {
		month, ok := parseMonthName(m[1])
		if !ok {
			return time.Time{}, false
		}
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return makeDate(y, int(month), d)
	}
	return time.Time{}, false
}

// patternStrategy applies ordered regex families over the corpus. Families
// run most-specific first, so a date sitting next to injury vocabulary beats
// a date sitting next to filing vocabulary regardless of which appears
// earlier in the text.
type patternStrategy struct {
	anchor   Anchor
	injuryRe []*regexp.Regexp
}

func newPatternStrategy(rules Rules, anchor Anchor) *patternStrategy {
	kw := make([]string, len(rules.InjuryKeywords))
	for i, k := range rules.InjuryKeywords {
		kw[i] = regexp.QuoteMeta(k)
	}
	alt := strings.Join(kw, "|")

	return &patternStrategy{
		anchor: anchor,
		injuryRe: []*regexp.Regexp{
			// "date of injury: 15/01/2025", "injury date - 15/01/2025", "DOI: 15/01/2025"
			regexp.MustCompile(`(?i)\b(?:date\s+of\s+injury|injury\s+date|doi)\s*[:\-]?\s*` + dateFrag),
			// "injured on 15/01/2025", "the incident that occurred on 15 Jan 2025"
			regexp.MustCompile(`(?i)\b(?:` + alt + `)\b[^.\n]{0,40}?\bon\s+(?:the\s+)?` + dateFrag),
			// injury keyword directly adjacent to a date, no "on"
			regexp.MustCompile(`(?i)\b(?:` + alt + `)\b[:\s]{1,3}` + dateFrag),
		},
	}
}

func (s *patternStrategy) Name() string { return "regex" }

func (s *patternStrategy) Attempt(_ context.Context, req *Request) *model.ExtractionResult {
	if req.Corpus == "" {
		return nil
	}

	// Family 1: injury-keyword-adjacent dates — high confidence.
	for _, re := range s.injuryRe {
		m := re.FindStringSubmatch(req.Corpus)
		if m == nil {
			continue
		}
		date, ok := parseAnyDate(m[len(m)-1])
		if !ok {
			continue
		}
		validation := ValidateDate(date, req.Ticket.CreatedAt, req.Now)
		if !validation.Valid {
			zap.L().Debug("injury-adjacent date rejected",
				zap.Int64("ticket_id", req.Ticket.ID),
				zap.String("match", m[0]),
				zap.String("reason", validation.Reason),
			)
			break
		}
		res := model.NewExtractionResult(&date, model.ConfidenceHigh, model.SourceExtracted, model.MethodRegex, strings.TrimSpace(m[0]), validation)
		return &res
	}

	// Family 2: relative-time phrases — medium confidence, resolved against
	// the configured anchor.
	base := req.Now
	if s.anchor == AnchorCreated && !req.Ticket.CreatedAt.IsZero() {
		base = req.Ticket.CreatedAt.UTC()
	}
	if date, matched, ok := resolveRelative(req.Corpus, base); ok {
		validation := ValidateDate(date, req.Ticket.CreatedAt, req.Now)
		if validation.Valid {
			res := model.NewExtractionResult(&date, model.ConfidenceMedium, model.SourceExtracted, model.MethodRegex, matched, validation)
			return &res
		}
	}

	// Family 3: any recognizable date format, last resort — medium confidence.
	for _, re := range []*regexp.Regexp{reISOLoose, reNumLoose, reTextLoose} {
		m := re.FindString(req.Corpus)
		if m == "" {
			continue
		}
		date, ok := parseAnyDate(m)
		if !ok {
			continue
		}
		validation := ValidateDate(date, req.Ticket.CreatedAt, req.Now)
		if !validation.Valid {
			continue
		}
		res := model.NewExtractionResult(&date, model.ConfidenceMedium, model.SourceExtracted, model.MethodRegex, m, validation)
		return &res
	}

	return nil
}
