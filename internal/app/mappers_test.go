package app_test

import (
	"errors"
	"testing"

	"review_dash/internal/app"
	"review_dash/internal/domain"
)

func TestHeaderIndex(t *testing.T) {
	idx, err := app.HeaderIndex([]string{"\ufeff Rating", "REVIEW ", "Verified_Purchase", "platform", " Version", "extra"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if idx["rating"] != 0 || idx["review"] != 1 || idx["version"] != 4 {
		t.Fatalf("unexpected index: %v", idx)
	}

	_, err = app.HeaderIndex([]string{"rating", "review"})
	if !errors.Is(err, domain.ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
}

func TestParseRating(t *testing.T) {
	for in, want := range map[string]int{"1": 1, " 5 ": 5, "4.0": 4} {
		got, err := app.ParseRating(in)
		if err != nil || got != want {
			t.Fatalf("ParseRating(%q) = %d, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "0", "6", "4.5", "five"} {
		if _, err := app.ParseRating(in); !errors.Is(err, domain.ErrInvalidDataset) {
			t.Fatalf("ParseRating(%q): expected ErrInvalidDataset, got %v", in, err)
		}
	}
}

func TestParseVerified(t *testing.T) {
	for in, want := range map[string]bool{"True": true, "yes": true, "1": true, "FALSE": false, "n": false, "0": false} {
		got, err := app.ParseVerified(in)
		if err != nil || got != want {
			t.Fatalf("ParseVerified(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := app.ParseVerified("maybe"); !errors.Is(err, domain.ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
}

func TestMapRecord(t *testing.T) {
	rv, err := app.MapRecord(map[string]string{
		"rating": "3", "review": "ok", "verified_purchase": "true", "platform": " Web ", "version": "4.2.1",
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := domain.Review{Text: "ok", Rating: 3, Verified: true, Platform: "Web", Version: "4.2.1"}
	if rv != want {
		t.Fatalf("review = %+v", rv)
	}
}
