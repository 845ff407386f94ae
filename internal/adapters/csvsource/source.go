// Package csvsource loads the review dataset from a CSV file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"review_dash/internal/app"
	"review_dash/internal/domain"
)

type Source struct{ path string }

func New(path string) *Source { return &Source{path: path} }

func (s *Source) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(ctx, f)
}

// Read parses a header row plus records. The first malformed row aborts the load.
func Read(ctx context.Context, r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrInvalidDataset, err)
	}
	idx, err := app.HeaderIndex(header)
	if err != nil {
		return nil, err
	}

	var out []domain.Review
	rec := make(map[string]string, len(app.RequiredColumns))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
		}
		for _, col := range app.RequiredColumns {
			rec[col] = fields[idx[col]]
		}
		rv, err := app.MapRecord(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rv)
	}
	return out, nil
}
