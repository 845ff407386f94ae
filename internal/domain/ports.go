package domain

import "context"

// ReviewSource loads the full review dataset once. Implementations are read-only.
type ReviewSource interface {
	LoadReviews(ctx context.Context) ([]Review, error)
}

// Classifier is an opaque binary text classifier. Predict returns one class id per input text.
type Classifier interface {
	Predict(ctx context.Context, texts []string) ([]int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

type Overview struct {
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	PositivePct   float64 `json:"positive_pct"`
	NegativePct   float64 `json:"negative_pct"`
}

type LabelCount struct {
	Label SentimentLabel `json:"label"`
	Count int            `json:"count"`
}

// Crosstab is a row-major count table: Counts[i][j] is the count for Rows[i] and Columns[j].
type Crosstab struct {
	Rows    []string         `json:"rows"`
	Columns []SentimentLabel `json:"columns"`
	Counts  [][]int          `json:"counts"`
}

type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// GroupMean is the mean of a numeric column over one group key.
type GroupMean struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
}
