// Package model loads a fitted TF-IDF + linear binary classifier exported
// as JSON and runs inference locally.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrInvalidArtifact = errors.New("model: invalid artifact")

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Artifact is the on-disk form of the model.
type Artifact struct {
	Classes     []int          `json:"classes"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Coef        []float64      `json:"coef"`
	Intercept   float64        `json:"intercept"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
	SublinearTF bool           `json:"sublinear_tf"`
	NgramRange  [2]int         `json:"ngram_range"`
}

type Linear struct {
	a         Artifact
	lowercase bool
	minN      int
	maxN      int
}

// Load reads and validates a model artifact. Any inconsistency is an error.
func Load(path string) (*Linear, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return New(a)
}

func New(a Artifact) (*Linear, error) {
	if len(a.Classes) != 2 {
		return nil, fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(a.Classes))
	}
	if len(a.Coef) == 0 || len(a.IDF) != len(a.Coef) {
		return nil, fmt.Errorf("%w: idf has %d entries, coef has %d", ErrInvalidArtifact, len(a.IDF), len(a.Coef))
	}
	for term, i := range a.Vocabulary {
		if i < 0 || i >= len(a.Coef) {
			return nil, fmt.Errorf("%w: vocabulary index %d for %q out of range", ErrInvalidArtifact, i, term)
		}
	}
	minN, maxN := a.NgramRange[0], a.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("%w: bad ngram_range %v", ErrInvalidArtifact, a.NgramRange)
	}
	lower := true
	if a.Lowercase != nil {
		lower = *a.Lowercase
	}
	return &Linear{a: a, lowercase: lower, minN: minN, maxN: maxN}, nil
}

func (m *Linear) Predict(ctx context.Context, texts []string) ([]int, error) {
	out := make([]int, 0, len(texts))
	for _, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Decision(t) > 0 {
			out = append(out, m.a.Classes[1])
		} else {
			out = append(out, m.a.Classes[0])
		}
	}
	return out, nil
}

// Decision is the signed distance to the separating hyperplane.
func (m *Linear) Decision(text string) float64 {
	tf := make(map[int]float64)
	for _, term := range m.terms(text) {
		if i, ok := m.a.Vocabulary[term]; ok {
			tf[i]++
		}
	}
	var norm float64
	for i, c := range tf {
		if m.a.SublinearTF {
			c = 1 + math.Log(c)
		}
		w := c * m.a.IDF[i]
		tf[i] = w
		norm += w * w
	}
	score := m.a.Intercept
	if norm == 0 {
		return score
	}
	norm = math.Sqrt(norm)
	for i, w := range tf {
		score += m.a.Coef[i] * w / norm
	}
	return score
}

func (m *Linear) terms(text string) []string {
	if m.lowercase {
		text = cases.Lower(language.Und).String(text)
	}
	words := tokenPattern.FindAllString(text, -1)
	var terms []string
	for n := m.minN; n <= m.maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}
