package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"financehouse/internal/models"
)

// Duplicate scoring weights. Amount equality dominates; date proximity and
// description similarity split the rest. The acceptance threshold itself is
// configuration (DUPLICATE_SCORE_THRESHOLD), not a fixed constant.
const (
	amountWeight = 0.4
	dateWeight   = 0.3
	descWeight   = 0.3
)

// duplicateCandidate is the normalized view of a row or an existing
// transaction used for similarity scoring.
type duplicateCandidate struct {
	AmountCents int64
	Date        time.Time
	Description string
	tokens      map[string]bool
}

func newDuplicateCandidate(amountCents int64, date time.Time, description string) duplicateCandidate {
	return duplicateCandidate{
		AmountCents: amountCents,
		Date:        date,
		Description: description,
		tokens:      descriptionTokens(description),
	}
}

func candidateFromTransaction(t *models.Transaction) duplicateCandidate {
	return newDuplicateCandidate(t.AmountCents, t.Date, t.Description)
}

// similarityScore rates how likely two entries describe the same real-world
// transaction, in [0, 1]. The score is monotonic in amount equality, date
// proximity and description closeness.
func similarityScore(a, b duplicateCandidate, dateWindowDays int) float64 {
	score := 0.0
	if a.AmountCents == b.AmountCents {
		score += amountWeight
	}
	score += dateWeight * dateProximity(a.Date, b.Date, dateWindowDays)
	score += descWeight * tokenOverlap(a.tokens, b.tokens)
	return score
}

// dateProximity is 1 for the same day, falling linearly to 0 at the window
// boundary.
func dateProximity(a, b time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		windowDays = 1
	}
	days := math.Abs(a.Sub(b).Hours()) / 24
	if days >= float64(windowDays) {
		return 0
	}
	return 1 - days/float64(windowDays)
}

// tokenOverlap is the Jaccard similarity of the two token sets. Two empty
// descriptions count as identical.
func tokenOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// descriptionTokens lowercases and splits a description into word tokens,
// dropping single characters.
func descriptionTokens(description string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(description)) {
		field = strings.Trim(field, ".,;:!?-()[]\"'")
		if len(field) > 1 {
			tokens[field] = true
		}
	}
	return tokens
}

// duplicateReason builds the human-readable explanation attached to a flag.
func duplicateReason(score float64, matchedDesc string, matchedDate time.Time) string {
	return fmt.Sprintf("similar to %q on %s (score %.2f)",
		matchedDesc, matchedDate.Format("2006-01-02"), score)
}
