package usecase

import (
	"regexp"

	"github.com/shopsense/backend/internal/domain"
)

var (
	positivePattern = regexp.MustCompile(`excellent|good|great|perfect|amazing|love|like|awesome|fantastic`)
	negativePattern = regexp.MustCompile(`bad|terrible|horrible|awful|hate|dislike|worst|disappointing`)
	urgentPattern   = regexp.MustCompile(`urgent|asap|immediately|now|quick|fast`)
)

// AnalyzeSentiment gives a lexical positive/negative/neutral read of a
// normalized query plus an urgency flag. Negative terms win over positive
// ones when both appear.
func AnalyzeSentiment(query string) domain.Sentiment {
	sentiment := "neutral"
	if positivePattern.MatchString(query) {
		sentiment = "positive"
	}
	if negativePattern.MatchString(query) {
		sentiment = "negative"
	}

	return domain.Sentiment{
		Sentiment:  sentiment,
		IsUrgent:   urgentPattern.MatchString(query),
		Confidence: 0.8,
	}
}
