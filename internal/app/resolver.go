package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"review_dash/internal/domain"
)

// Keyword overrides, checked in this order. Positive always wins.
var (
	positiveKeywords = []string{"good", "great", "excellent", "awesome", "nice", "amazing", "well"}
	negativeKeywords = []string{"bad", "worst", "poor", "terrible", "awful", "hate", "not"}
)

// DecisionSource says which branch of the resolver produced a sentiment.
type DecisionSource string

const (
	SourcePositiveKeyword DecisionSource = "positive_keyword"
	SourceNegativeKeyword DecisionSource = "negative_keyword"
	SourceClassifier      DecisionSource = "classifier"
)

type Resolution struct {
	Sentiment domain.PredictedSentiment
	Source    DecisionSource
	Keyword   string // empty when Source is SourceClassifier
}

var ErrNoClassifier = errors.New("sentiment resolver: classifier is not loaded")

// SentimentResolver maps free text to Positive or Negative: keyword overrides
// first, then the classifier. It holds no state besides the classifier.
type SentimentResolver struct {
	clf domain.Classifier
}

func NewSentimentResolver(clf domain.Classifier) (*SentimentResolver, error) {
	if clf == nil {
		return nil, ErrNoClassifier
	}
	return &SentimentResolver{clf: clf}, nil
}

func (r *SentimentResolver) Resolve(ctx context.Context, text string) (Resolution, error) {
	prepared := prepareInput(text)
	tokens := strings.Fields(prepared)

	if kw := firstKeyword(tokens, positiveKeywords); kw != "" {
		return Resolution{Sentiment: domain.PredictedPositive, Source: SourcePositiveKeyword, Keyword: kw}, nil
	}
	if kw := firstKeyword(tokens, negativeKeywords); kw != "" {
		return Resolution{Sentiment: domain.PredictedNegative, Source: SourceNegativeKeyword, Keyword: kw}, nil
	}

	ids, err := r.clf.Predict(ctx, []string{prepared})
	if err != nil {
		return Resolution{}, fmt.Errorf("classifier predict: %w", err)
	}
	if len(ids) != 1 {
		return Resolution{}, fmt.Errorf("%w: expected 1 prediction, got %d", domain.ErrUnknownClass, len(ids))
	}
	s, err := domain.PredictedFromClass(ids[0])
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Sentiment: s, Source: SourceClassifier}, nil
}

// prepareInput lowercases, trims and flattens newlines. Punctuation is kept.
func prepareInput(text string) string {
	s := cases.Lower(language.Und).String(text)
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "\n", " ")
}

// firstKeyword returns the first entry of keywords that appears as a whole token.
func firstKeyword(tokens, keywords []string) string {
	for _, kw := range keywords {
		for _, tok := range tokens {
			if tok == kw {
				return kw
			}
		}
	}
	return ""
}
