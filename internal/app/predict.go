package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// PredictionObserver is notified after every successful resolution.
type PredictionObserver func(source, label string)

type PredictService struct {
	resolver *SentimentResolver
	observe  PredictionObserver
}

func NewPredictService(r *SentimentResolver, observe PredictionObserver) *PredictService {
	return &PredictService{resolver: r, observe: observe}
}

func (s *PredictService) Predict(ctx context.Context, text string) (Resolution, error) {
	res, err := s.resolver.Resolve(ctx, text)
	if err != nil {
		log.Error().Err(err).Int("text_len", len(text)).Msg("sentiment prediction failed")
		return Resolution{}, err
	}
	log.Debug().
		Str("source", string(res.Source)).
		Str("keyword", res.Keyword).
		Str("sentiment", string(res.Sentiment)).
		Msg("sentiment resolved")
	if s.observe != nil {
		s.observe(string(res.Source), string(res.Sentiment))
	}
	return res, nil
}
