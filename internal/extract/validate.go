package extract

import (
	"fmt"
	"time"

	"github.com/clearcomp/claimdate/internal/model"
)

// Sanity bounds for candidate injury dates. These exist because garbage
// dates (future-dated certificates, mis-parsed years) have previously made
// it into case records and silently corrupted every downstream compliance
// calculation keyed off them.
const (
	maxFutureSlack      = 24 * time.Hour
	maxAgeYears         = 5
	earliestValidYear   = 2020
	minPlausibleYear    = 1000
	maxDaysBeforeTicket = 365
)

// ValidateDate bounds a candidate date against "now" and the ticket's
// creation time. Every layer must call this before committing to a date;
// validating only once at the end of the pipeline is how the future-dated
// certificate bug got through historically.
func ValidateDate(candidate, ticketCreated, now time.Time) model.ValidationResult {
	reject := func(reason string) model.ValidationResult {
		return model.ValidationResult{
			Valid:      false,
			Reason:     reason,
			Confidence: model.ConfidenceLow,
			Source:     model.SourceUnknown,
		}
	}

	if candidate.Year() < minPlausibleYear {
		return reject(fmt.Sprintf("implausible year %d, likely a mis-parsed date", candidate.Year()))
	}
	if candidate.Year() < earliestValidYear {
		return reject(fmt.Sprintf("year %d predates the earliest supported operating period (%d)", candidate.Year(), earliestValidYear))
	}
	if candidate.After(now.Add(maxFutureSlack)) {
		return reject(fmt.Sprintf("date %s is more than 1 day in the future", candidate.Format("2006-01-02")))
	}
	if candidate.Before(now.AddDate(-maxAgeYears, 0, 0)) {
		return reject(fmt.Sprintf("date %s is more than %d years old", candidate.Format("2006-01-02"), maxAgeYears))
	}
	if !ticketCreated.IsZero() && candidate.Before(ticketCreated.AddDate(0, 0, -maxDaysBeforeTicket)) {
		return reject(fmt.Sprintf("date %s is more than %d days before the ticket was created", candidate.Format("2006-01-02"), maxDaysBeforeTicket))
	}

	return model.ValidationResult{
		Valid:      true,
		Confidence: model.ConfidenceMedium,
		Source:     model.SourceExtracted,
	}
}
