package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"review_dash/internal/domain"
)

const DefaultTopKeywords = 100

type DashboardService struct {
	ds       *Dataset
	cache    domain.Cache
	cacheTTL time.Duration
	topN     int
}

func NewDashboardService(ds *Dataset, c domain.Cache, ttl time.Duration, topN int) *DashboardService {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	return &DashboardService{ds: ds, cache: c, cacheTTL: ttl, topN: topN}
}

func (s *DashboardService) Dataset() *Dataset { return s.ds }

// cached serves key from the cache when present, otherwise computes and stores it.
// Cache errors only cost a recomputation.
func cached[T any](ctx context.Context, s *DashboardService, key string, compute func() T) T {
	key = "dash:" + s.ds.Fingerprint() + ":" + key
	var out T
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &out); ok && err == nil {
			return out
		}
	}
	out = compute()
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out
}

func (s *DashboardService) Overview(ctx context.Context) domain.Overview {
	return cached(ctx, s, "overview", func() domain.Overview {
		rows := s.ds.rows
		if len(rows) == 0 {
			return domain.Overview{}
		}
		var sum, pos, neg int
		for _, r := range rows {
			sum += r.Rating
			switch r.Label {
			case domain.Positive:
				pos++
			case domain.Negative:
				neg++
			}
		}
		n := float64(len(rows))
		return domain.Overview{
			TotalReviews:  len(rows),
			AverageRating: round(float64(sum)/n, 2),
			PositivePct:   round(float64(pos)/n*100, 1),
			NegativePct:   round(float64(neg)/n*100, 1),
		}
	})
}

// SentimentDistribution always lists every label, in display order.
func (s *DashboardService) SentimentDistribution(ctx context.Context) []domain.LabelCount {
	return cached(ctx, s, "sentiment", func() []domain.LabelCount {
		counts := map[domain.SentimentLabel]int{}
		for _, r := range s.ds.rows {
			counts[r.Label]++
		}
		out := make([]domain.LabelCount, 0, len(domain.Labels))
		for _, l := range domain.Labels {
			out = append(out, domain.LabelCount{Label: l, Count: counts[l]})
		}
		return out
	})
}

func (s *DashboardService) RatingBySentiment(ctx context.Context) domain.Crosstab {
	return cached(ctx, s, "rating_x_sentiment", func() domain.Crosstab {
		return crosstab(s.ds.rows, func(r Row) string { return strconv.Itoa(r.Rating) }, lessNumeric)
	})
}

func (s *DashboardService) VerifiedBySentiment(ctx context.Context) domain.Crosstab {
	return cached(ctx, s, "verified_x_sentiment", func() domain.Crosstab {
		return crosstab(s.ds.rows, func(r Row) string { return strconv.FormatBool(r.Verified) }, lessString)
	})
}

// Keywords returns the most frequent normalized words among reviews with label.
func (s *DashboardService) Keywords(ctx context.Context, label domain.SentimentLabel, topN int) ([]domain.KeywordCount, error) {
	label, err := domain.ParseLabel(string(label))
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = s.topN
	}
	key := fmt.Sprintf("keywords:%s:%d", strings.ToLower(string(label)), topN)
	return cached(ctx, s, key, func() []domain.KeywordCount {
		freq := map[string]int{}
		for _, r := range s.ds.rows {
			if r.Label != label {
				continue
			}
			for _, w := range strings.Fields(r.CleanText) {
				freq[w]++
			}
		}
		out := make([]domain.KeywordCount, 0, len(freq))
		for w, c := range freq {
			out = append(out, domain.KeywordCount{Word: w, Count: c})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Word < out[j].Word
		})
		if len(out) > topN {
			out = out[:topN]
		}
		return out
	}), nil
}

// ReviewLengthBySentiment is the mean normalized-text length per label present.
func (s *DashboardService) ReviewLengthBySentiment(ctx context.Context) []domain.GroupMean {
	return cached(ctx, s, "length_by_sentiment", func() []domain.GroupMean {
		means := groupMean(s.ds.rows, func(r Row) string { return string(r.Label) }, func(r Row) float64 { return float64(r.CleanLength) })
		out := make([]domain.GroupMean, 0, len(domain.Labels))
		for _, l := range domain.Labels {
			for _, m := range means {
				if m.Key == string(l) {
					out = append(out, m)
				}
			}
		}
		return out
	})
}

func (s *DashboardService) RatingByPlatform(ctx context.Context) []domain.GroupMean {
	return cached(ctx, s, "rating_by_platform", func() []domain.GroupMean {
		return groupMean(s.ds.rows, func(r Row) string { return r.Platform }, ratingOf)
	})
}

func (s *DashboardService) RatingByMajorVersion(ctx context.Context) []domain.GroupMean {
	return cached(ctx, s, "rating_by_major_version", func() []domain.GroupMean {
		return groupMean(s.ds.rows, func(r Row) string { return r.MajorVersion }, ratingOf)
	})
}

// ---- aggregation helpers ----

func ratingOf(r Row) float64 { return float64(r.Rating) }

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func lessString(a, b string) bool { return a < b }

func lessNumeric(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return x < y
}

// groupMean averages value per key; keys are sorted ascending.
func groupMean(rows []Row, key func(Row) string, value func(Row) float64) []domain.GroupMean {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, r := range rows {
		k := key(r)
		sums[k] += value(r)
		counts[k]++
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domain.GroupMean, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.GroupMean{Key: k, Mean: sums[k] / float64(counts[k])})
	}
	return out
}

// crosstab counts rows per (key, label). Only keys and labels that occur are listed.
func crosstab(rows []Row, key func(Row) string, less func(a, b string) bool) domain.Crosstab {
	counts := map[string]map[domain.SentimentLabel]int{}
	seen := map[domain.SentimentLabel]bool{}
	for _, r := range rows {
		k := key(r)
		if counts[k] == nil {
			counts[k] = map[domain.SentimentLabel]int{}
		}
		counts[k][r.Label]++
		seen[r.Label] = true
	}

	ct := domain.Crosstab{Rows: make([]string, 0, len(counts))}
	for k := range counts {
		ct.Rows = append(ct.Rows, k)
	}
	sort.Slice(ct.Rows, func(i, j int) bool { return less(ct.Rows[i], ct.Rows[j]) })
	for _, l := range domain.Labels {
		if seen[l] {
			ct.Columns = append(ct.Columns, l)
		}
	}
	ct.Counts = make([][]int, len(ct.Rows))
	for i, k := range ct.Rows {
		ct.Counts[i] = make([]int, len(ct.Columns))
		for j, l := range ct.Columns {
			ct.Counts[i][j] = counts[k][l]
		}
	}
	return ct
}
