package domain

import (
	"fmt"
	"strings"
)

type Review struct {
	Text     string
	Rating   int // 1..5
	Verified bool
	Platform string
	Version  string // dotted, e.g. "4.2.1"
}

// MajorVersion is the part of Version before the first '.'.
func (r Review) MajorVersion() string {
	if i := strings.IndexByte(r.Version, '.'); i >= 0 {
		return r.Version[:i]
	}
	return r.Version
}

type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Neutral  SentimentLabel = "Neutral"
	Negative SentimentLabel = "Negative"
)

// Labels lists every rating-derived label in display order.
var Labels = []SentimentLabel{Positive, Neutral, Negative}

// DeriveLabel maps a star rating to its label: >=4 Positive, 3 Neutral, otherwise Negative.
func DeriveLabel(rating int) SentimentLabel {
	switch {
	case rating >= 4:
		return Positive
	case rating == 3:
		return Neutral
	default:
		return Negative
	}
}

// ParseLabel accepts a label name in any case.
func ParseLabel(s string) (SentimentLabel, error) {
	for _, l := range Labels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sentiment %q", ErrInvalidInput, s)
}

// PredictedSentiment is the output of the free-text predictor. It has no
// Neutral member.
type PredictedSentiment string

const (
	PredictedPositive PredictedSentiment = "Positive"
	PredictedNegative PredictedSentiment = "Negative"
)

// PredictedFromClass maps a binary classifier id to a sentiment.
func PredictedFromClass(id int) (PredictedSentiment, error) {
	switch id {
	case 0:
		return PredictedNegative, nil
	case 1:
		return PredictedPositive, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownClass, id)
	}
}
