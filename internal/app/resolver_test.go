package app_test

import (
	"context"
	"errors"
	"testing"

	"review_dash/internal/app"
	"review_dash/internal/domain"
)

// ---- fakes ----

type fakeClassifier struct {
	ids   []int
	err   error
	calls int
	seen  []string
}

func (f *fakeClassifier) Predict(ctx context.Context, texts []string) ([]int, error) {
	f.calls++
	f.seen = append(f.seen, texts...)
	return f.ids, f.err
}

func newResolver(t *testing.T, clf domain.Classifier) *app.SentimentResolver {
	t.Helper()
	r, err := app.NewSentimentResolver(clf)
	if err != nil {
		t.Fatalf("NewSentimentResolver: %v", err)
	}
	return r
}

// ---- tests ----

func TestResolve_PositiveKeyword(t *testing.T) {
	clf := &fakeClassifier{ids: []int{0}}
	r := newResolver(t, clf)

	res, err := r.Resolve(context.Background(), "This app is great and amazing")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Sentiment != domain.PredictedPositive || res.Source != app.SourcePositiveKeyword || res.Keyword != "great" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if clf.calls != 0 {
		t.Fatalf("classifier should not run on keyword match")
	}
}

func TestResolve_NegativeKeyword(t *testing.T) {
	clf := &fakeClassifier{ids: []int{1}}
	r := newResolver(t, clf)

	res, err := r.Resolve(context.Background(), "This is the worst app, terrible")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Sentiment != domain.PredictedNegative || res.Source != app.SourceNegativeKeyword || res.Keyword != "worst" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if clf.calls != 0 {
		t.Fatalf("classifier should not run on keyword match")
	}
}

func TestResolve_PositiveBeatsNegative(t *testing.T) {
	r := newResolver(t, &fakeClassifier{ids: []int{0}})
	for _, in := range []string{"good but bad", "bad bad bad terrible good", "NOT well"} {
		res, err := r.Resolve(context.Background(), in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if res.Sentiment != domain.PredictedPositive {
			t.Fatalf("%q: expected Positive, got %s", in, res.Sentiment)
		}
	}
}

func TestResolve_KeywordsAreWholeTokens(t *testing.T) {
	// "great!" and "goodness" are not keyword tokens, so the classifier decides.
	clf := &fakeClassifier{ids: []int{0}}
	r := newResolver(t, clf)

	res, err := r.Resolve(context.Background(), "great! goodness")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Source != app.SourceClassifier || res.Sentiment != domain.PredictedNegative {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolve_ClassifierFallback(t *testing.T) {
	cases := []struct {
		id   int
		want domain.PredictedSentiment
	}{
		{0, domain.PredictedNegative},
		{1, domain.PredictedPositive},
	}
	for _, tc := range cases {
		clf := &fakeClassifier{ids: []int{tc.id}}
		r := newResolver(t, clf)
		res, err := r.Resolve(context.Background(), "  Meh, it works\nI guess  ")
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if res.Sentiment != tc.want || res.Source != app.SourceClassifier || res.Keyword != "" {
			t.Fatalf("id %d: unexpected resolution %+v", tc.id, res)
		}
		if len(clf.seen) != 1 || clf.seen[0] != "meh, it works i guess" {
			t.Fatalf("classifier got %q", clf.seen)
		}
	}
}

func TestResolve_EmptyInputFallsThrough(t *testing.T) {
	clf := &fakeClassifier{ids: []int{1}}
	r := newResolver(t, clf)

	res, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Sentiment != domain.PredictedPositive || clf.calls != 1 || clf.seen[0] != "" {
		t.Fatalf("unexpected: %+v calls=%d seen=%q", res, clf.calls, clf.seen)
	}
}

func TestResolve_UnknownClassIsError(t *testing.T) {
	for _, ids := range [][]int{{2}, {-1}, {}, {0, 1}} {
		r := newResolver(t, &fakeClassifier{ids: ids})
		if _, err := r.Resolve(context.Background(), "meh"); !errors.Is(err, domain.ErrUnknownClass) {
			t.Fatalf("ids %v: expected ErrUnknownClass, got %v", ids, err)
		}
	}
}

func TestResolve_ClassifierErrorSurfaces(t *testing.T) {
	boom := errors.New("boom")
	r := newResolver(t, &fakeClassifier{err: boom})
	if _, err := r.Resolve(context.Background(), "meh"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped classifier error, got %v", err)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := newResolver(t, &fakeClassifier{ids: []int{1}})
	for _, in := range []string{"good", "awful", "meh, it works", ""} {
		a, errA := r.Resolve(context.Background(), in)
		b, errB := r.Resolve(context.Background(), in)
		if errA != nil || errB != nil || a != b {
			t.Fatalf("%q: %+v/%v vs %+v/%v", in, a, errA, b, errB)
		}
	}
}

func TestNewSentimentResolver_NilClassifier(t *testing.T) {
	if _, err := app.NewSentimentResolver(nil); !errors.Is(err, app.ErrNoClassifier) {
		t.Fatalf("expected ErrNoClassifier, got %v", err)
	}
}

func TestPredictService_Observes(t *testing.T) {
	var gotSource, gotLabel string
	svc := app.NewPredictService(newResolver(t, &fakeClassifier{ids: []int{1}}), func(source, label string) {
		gotSource, gotLabel = source, label
	})
	if _, err := svc.Predict(context.Background(), "hate it"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if gotSource != "negative_keyword" || gotLabel != "Negative" {
		t.Fatalf("observer got %s/%s", gotSource, gotLabel)
	}
}
