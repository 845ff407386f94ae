package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"review_dash/internal/domain"
)

type LoadService struct {
	src  domain.ReviewSource
	norm *TextNormalizer
}

func NewLoadService(src domain.ReviewSource, n *TextNormalizer) *LoadService {
	if n == nil {
		n = NewTextNormalizer()
	}
	return &LoadService{src: src, norm: n}
}

// Load reads every review from the source and derives the dataset columns.
// Any source error is returned as is; callers treat it as fatal.
func (s *LoadService) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	reviews, err := s.src.LoadReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	ds := NewDataset(reviews, s.norm)
	log.Info().
		Int("rows", ds.Len()).
		Str("fingerprint", ds.Fingerprint()).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}
