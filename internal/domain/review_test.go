package domain_test

import (
	"errors"
	"testing"

	"review_dash/internal/domain"
)

func TestDeriveLabel_Total(t *testing.T) {
	want := map[int]domain.SentimentLabel{
		1: domain.Negative,
		2: domain.Negative,
		3: domain.Neutral,
		4: domain.Positive,
		5: domain.Positive,
	}
	for r, exp := range want {
		if got := domain.DeriveLabel(r); got != exp {
			t.Fatalf("DeriveLabel(%d) = %s, want %s", r, got, exp)
		}
	}
}

func TestPredictedFromClass(t *testing.T) {
	if s, err := domain.PredictedFromClass(0); err != nil || s != domain.PredictedNegative {
		t.Fatalf("class 0: %v %v", s, err)
	}
	if s, err := domain.PredictedFromClass(1); err != nil || s != domain.PredictedPositive {
		t.Fatalf("class 1: %v %v", s, err)
	}
	for _, id := range []int{-1, 2, 7} {
		if _, err := domain.PredictedFromClass(id); !errors.Is(err, domain.ErrUnknownClass) {
			t.Fatalf("class %d: expected ErrUnknownClass, got %v", id, err)
		}
	}
}

func TestMajorVersion(t *testing.T) {
	cases := map[string]string{"4.2.1": "4", "1": "1", "": "", "10.0": "10"}
	for in, exp := range cases {
		if got := (domain.Review{Version: in}).MajorVersion(); got != exp {
			t.Fatalf("MajorVersion(%q) = %q, want %q", in, got, exp)
		}
	}
}

func TestParseLabel(t *testing.T) {
	l, err := domain.ParseLabel(" neutral ")
	if err != nil || l != domain.Neutral {
		t.Fatalf("unexpected: %v %v", l, err)
	}
	if _, err := domain.ParseLabel("mixed"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
