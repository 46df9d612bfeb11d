package usecase

import (
	"regexp"

	"github.com/shopsense/backend/internal/domain"
)

// intentRule pairs an intent with its lexical pattern. Rules are evaluated
// in declaration order and the first match wins, so the order below is a
// contract: several patterns overlap (a query can contain both a price term
// and a comparison term) and priority decides.
type intentRule struct {
	intent  domain.Intent
	pattern *regexp.Regexp
}

var intentRules = []intentRule{
	{domain.IntentGreeting, regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening)$`)},
	{domain.IntentInventoryCheck, regexp.MustCompile(`inventory|stock count|how many.*available|how many.*have|total.*stock|check.*inventory`)},
	{domain.IntentProductDetails, regexp.MustCompile(`tell me (more )?about|details about|information about|specs|specifications|features of`)},
	{domain.IntentProductSelection, regexp.MustCompile(`select|choose|pick|i want|show me.*details|more info.*about`)},
	{domain.IntentBrandInquiry, regexp.MustCompile(`(show me|tell me about|what.*have) .*(apple|dell|hp|samsung|sony|asus|lenovo|microsoft|google|nintendo|meta|valve|canon|bose|corsair|framework|garmin|beats)`)},
	{domain.IntentAvailabilityCheck, regexp.MustCompile(`do you have|is .* available|in stock|available.*stock`)},
	{domain.IntentProductSearch, regexp.MustCompile(`search|show|find|looking for|browse`)},
	{domain.IntentPriceQuery, regexp.MustCompile(`price|cost|how much|expensive|cheap|budget|affordable|under|over|\$`)},
	{domain.IntentComparison, regexp.MustCompile(`compare|vs|versus|difference|better|which is better|contrast`)},
	{domain.IntentRecommendation, regexp.MustCompile(`recommend|suggest|what should i|best option|advice|help me choose`)},
}

// DetectIntent classifies a normalized (lower-cased, trimmed) query into
// exactly one intent. Queries matching no rule are classified as general.
func DetectIntent(query string) domain.Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(query) {
			return rule.intent
		}
	}
	return domain.IntentGeneral
}
