// Package httpapi serves the algorithm catalogue, step logs and playback
// metrics over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

// MaxValues bounds the array a single steps request may sort. Every step
// carries a full snapshot, so a log grows with the cube of its size.
const MaxValues = config.MaxSize

type algorithmInfo struct {
	Algorithm   sorting.Algorithm `json:"algorithm"`
	Name        string            `json:"name"`
	Time        string            `json:"time"`
	Space       string            `json:"space"`
	Best        string            `json:"best"`
	Worst       string            `json:"worst"`
	Description string            `json:"description"`
	Placeholder bool              `json:"placeholder"`
}

type stepsResponse struct {
	Algorithm sorting.Algorithm `json:"algorithm"`
	Effective sorting.Algorithm `json:"effective"`
	Input     []float64         `json:"input"`
	Steps     []trace.Step      `json:"steps"`
}

type server struct {
	registry *sorting.Registry
	logger   *zap.Logger
}

// NewHandler routes:
//
//	GET /healthz
//	GET /metrics
//	GET /algorithms
//	GET /algorithms/{name}/steps?values=5,3,8,1
func NewHandler(registry *sorting.Registry, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &server{registry: registry, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/algorithms", s.listAlgorithms)
	r.Get("/algorithms/{name}/steps", s.steps)
	return r
}

func (s *server) listAlgorithms(w http.ResponseWriter, r *http.Request) {
	algs := s.registry.List()
	out := make([]algorithmInfo, 0, len(algs))
	for _, a := range algs {
		info, _ := s.registry.Info(a)
		out = append(out, algorithmInfo{
			Algorithm:   a,
			Name:        info.Name,
			Time:        info.TimeComplexity,
			Space:       info.SpaceComplexity,
			Best:        info.BestCase,
			Worst:       info.WorstCase,
			Description: info.Description,
			Placeholder: info.Placeholder,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) steps(w http.ResponseWriter, r *http.Request) {
	a := sorting.ParseAlgorithm(chi.URLParam(r, "name"))

	values, err := parseValues(r.URL.Query().Get("values"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	input, err := trace.FromValues(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, effective, err := s.registry.Resolve(a)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	steps, err := s.registry.Steps(a, input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Debug("steps served", zap.String("algorithm", string(a)), zap.Int("steps", len(steps)))

	writeJSON(w, http.StatusOK, stepsResponse{
		Algorithm: a,
		Effective: effective,
		Input:     values,
		Steps:     steps,
	})
}

func parseValues(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("values query parameter is required")
	}
	parts := strings.Split(raw, ",")
	if len(parts) > MaxValues {
		return nil, fmt.Errorf("%d values, at most %d allowed", len(parts), MaxValues)
	}
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
