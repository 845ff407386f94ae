package model_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_dash/internal/adapters/model"
)

func artifact() model.Artifact {
	return model.Artifact{
		Classes:    []int{0, 1},
		Vocabulary: map[string]int{"love": 0, "crash": 1, "works": 2, "it works": 3},
		IDF:        []float64{1, 1, 1, 1},
		Coef:       []float64{2, -2, 0.5, 0.5},
		Intercept:  -0.1,
		NgramRange: [2]int{1, 2},
	}
}

func TestPredict(t *testing.T) {
	m, err := model.New(artifact())
	require.NoError(t, err)

	got, err := m.Predict(context.Background(), []string{"I LOVE it", "crash after crash", "meh, it works", "", "x"})
	require.NoError(t, err)
	// unknown-only and empty texts fall back to the intercept (< 0 -> class 0)
	assert.Equal(t, []int{1, 0, 1, 0, 0}, got)
}

func TestDecision_L2Normalized(t *testing.T) {
	m, err := model.New(artifact())
	require.NoError(t, err)
	// a single known term has unit weight after normalization
	assert.InDelta(t, 2-0.1, m.Decision("love"), 1e-9)
	assert.InDelta(t, 2-0.1, m.Decision("love love love"), 1e-9)
}

func TestNew_RejectsInconsistentArtifacts(t *testing.T) {
	bad := artifact()
	bad.Classes = []int{0, 1, 2}
	_, err := model.New(bad)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)

	bad = artifact()
	bad.IDF = []float64{1}
	_, err = model.New(bad)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)

	bad = artifact()
	bad.Vocabulary["oops"] = 9
	_, err = model.New(bad)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)

	bad = artifact()
	bad.NgramRange = [2]int{2, 1}
	_, err = model.New(bad)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		"classes": [0, 1],
		"vocabulary": {"good": 0, "slow": 1},
		"idf": [1.2, 1.7],
		"coef": [1.5, -1.5],
		"intercept": 0.0,
		"sublinear_tf": true
	}`), 0o600))

	m, err := model.Load(good)
	require.NoError(t, err)
	got, err := m.Predict(context.Background(), []string{"slow slow", "good"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{not json`), 0o600))
	_, err = model.Load(corrupt)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)

	_, err = model.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestPredict_CanceledContext(t *testing.T) {
	m, err := model.New(artifact())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Predict(ctx, []string{"love"})
	assert.ErrorIs(t, err, context.Canceled)
}
