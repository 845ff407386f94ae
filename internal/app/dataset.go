package app

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"review_dash/internal/domain"
)

// Row is a review plus the columns derived from it at load time.
type Row struct {
	domain.Review
	Label        domain.SentimentLabel
	CleanText    string
	CleanLength  int
	MajorVersion string
}

// Dataset is built once at startup and never mutated afterwards.
type Dataset struct {
	rows        []Row
	fingerprint string
}

func NewDataset(reviews []domain.Review, n *TextNormalizer) *Dataset {
	if n == nil {
		n = NewTextNormalizer()
	}
	rows := make([]Row, 0, len(reviews))
	h := sha1.New()
	for _, rv := range reviews {
		clean := n.Normalize(rv.Text)
		rows = append(rows, Row{
			Review:       rv,
			Label:        domain.DeriveLabel(rv.Rating),
			CleanText:    clean,
			CleanLength:  len(clean),
			MajorVersion: rv.MajorVersion(),
		})
		for _, part := range []string{
			strconv.Itoa(rv.Rating), strconv.FormatBool(rv.Verified), rv.Platform, rv.Version, rv.Text,
		} {
			h.Write([]byte(part))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return &Dataset{rows: rows, fingerprint: hex.EncodeToString(h.Sum(nil))[:16]}
}

func (d *Dataset) Len() int { return len(d.rows) }

// Fingerprint identifies the dataset contents; used to namespace cache keys.
func (d *Dataset) Fingerprint() string { return d.fingerprint }

// Rows returns a copy of the rows.
func (d *Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}
