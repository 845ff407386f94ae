// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_dash/internal/adapters/charts"
	"review_dash/internal/app"
	"review_dash/internal/domain"
)

const maxPredictBody = 64 << 10

type Handlers struct {
	Dash    *app.DashboardService
	Predict *app.PredictService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type predictRequest struct {
	Text *string `json:"text"`
}

type predictResponse struct {
	Sentiment domain.PredictedSentiment `json:"sentiment"`
	Source    app.DecisionSource        `json:"source"`
	Keyword   string                    `json:"keyword,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.dashboardPage)
	s.mux.Post("/v1/predict", h.predict)
	s.mux.Get("/v1/overview", h.overview)
	s.mux.Get("/v1/charts/{view}", h.chart)
	s.mux.Get("/v1/keywords", h.keywords)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

// writeCachedJSON serves v with a weak ETag and honors If-None-Match.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write body failed")
	}
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.Text == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", `expected {"text": "..."}`)
		return
	}

	res, err := h.Predict.Predict(r.Context(), *req.Text)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Prediction failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(predictResponse{Sentiment: res.Sentiment, Source: res.Source, Keyword: res.Keyword}); err != nil {
		log.Error().Err(err).Msg("failed to write predict body")
	}
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	writeCachedJSON(w, r, h.Dash.Overview(r.Context()))
}

func (h *Handlers) chart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var v any
	switch chi.URLParam(r, "view") {
	case "sentiment":
		v = h.Dash.SentimentDistribution(ctx)
	case "rating":
		v = h.Dash.RatingBySentiment(ctx)
	case "verified":
		v = h.Dash.VerifiedBySentiment(ctx)
	case "length":
		v = h.Dash.ReviewLengthBySentiment(ctx)
	case "platform":
		v = h.Dash.RatingByPlatform(ctx)
	case "version":
		v = h.Dash.RatingByMajorVersion(ctx)
	default:
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown chart view")
		return
	}
	writeCachedJSON(w, r, v)
}

func (h *Handlers) keywords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	label := domain.Positive
	if s := q.Get("sentiment"); s != "" {
		label = domain.SentimentLabel(s)
	}
	top := 0
	if ts := q.Get("top"); ts != "" {
		n, err := strconv.Atoi(ts)
		if err != nil || n <= 0 || n > 1000 {
			writeProblem(w, http.StatusBadRequest, "Invalid top", "top must be an integer between 1 and 1000")
			return
		}
		top = n
	}
	out, err := h.Dash.Keywords(r.Context(), label, top)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeProblem(w, http.StatusBadRequest, "Invalid sentiment", "sentiment must be Positive, Neutral or Negative")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
		return
	}
	writeCachedJSON(w, r, out)
}

func (h *Handlers) dashboardPage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := charts.RenderDashboard(r.Context(), &buf, h.Dash); err != nil {
		log.Error().Err(err).Msg("render dashboard failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not render dashboard")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write dashboard page")
	}
}
