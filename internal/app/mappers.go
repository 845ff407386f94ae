package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"review_dash/internal/domain"
)

// Column names as they appear after header normalization.
const (
	ColRating   = "rating"
	ColReview   = "review"
	ColVerified = "verified_purchase"
	ColPlatform = "platform"
	ColVersion  = "version"
)

var RequiredColumns = []string{ColRating, ColReview, ColVerified, ColPlatform, ColVersion}

var verifiedAliases = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true,
	"false": false, "f": false, "no": false, "n": false, "0": false,
}

// NormalizeHeader trims and lowercases a column name (and drops a UTF-8 BOM).
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// HeaderIndex maps every required column to its position in header.
func HeaderIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeHeader(h)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", domain.ErrInvalidDataset, strings.Join(missing, ", "))
	}
	return idx, nil
}

// ParseRating accepts "4", " 4 " and "4.0". Values outside 1..5 are rejected.
func ParseRating(s string) (int, error) {
	t := strings.TrimSpace(s)
	n, err := strconv.Atoi(t)
	if err != nil {
		f, ferr := strconv.ParseFloat(t, 64)
		if ferr != nil || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: rating %q is not an integer", domain.ErrInvalidDataset, s)
		}
		n = int(f)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("%w: rating %d out of range 1..5", domain.ErrInvalidDataset, n)
	}
	return n, nil
}

func ParseVerified(s string) (bool, error) {
	v, ok := verifiedAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, fmt.Errorf("%w: verified_purchase %q is not boolean-like", domain.ErrInvalidDataset, s)
	}
	return v, nil
}

// MapRecord builds a Review from a record keyed by normalized column name.
func MapRecord(rec map[string]string) (domain.Review, error) {
	rating, err := ParseRating(rec[ColRating])
	if err != nil {
		return domain.Review{}, err
	}
	verified, err := ParseVerified(rec[ColVerified])
	if err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		Text:     rec[ColReview],
		Rating:   rating,
		Verified: verified,
		Platform: strings.TrimSpace(rec[ColPlatform]),
		Version:  strings.TrimSpace(rec[ColVersion]),
	}, nil
}
