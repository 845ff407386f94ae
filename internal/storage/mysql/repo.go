package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"review_dash/internal/app"
	"review_dash/internal/domain"
)

// Repo is a read-only review source backed by MySQL.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	rec := make(map[string]string, len(app.RequiredColumns))
	for n := 1; rows.Next(); n++ {
		var rating, text, verified, platform, version string
		if err := rows.Scan(&rating, &text, &verified, &platform, &version); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrInvalidDataset, n, err)
		}
		rec[app.ColRating] = rating
		rec[app.ColReview] = text
		rec[app.ColVerified] = verified
		rec[app.ColPlatform] = platform
		rec[app.ColVersion] = version

		rv, err := app.MapRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
