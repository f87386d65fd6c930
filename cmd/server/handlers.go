package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vnpoem/poetic"
	"github.com/vnpoem/poetic/internal/config"
)

// ---- JSON request / response types --------------------------------------

type poemRequest struct {
	Poem string `json:"poem"`
	Form string `json:"form"`
	// Defects is only read by /api/mask; when absent the poem is analyzed first.
	Defects []poetic.Defect `json:"defects,omitempty"`
}

type scoreResponse struct {
	Form   poetic.FormKind `json:"form"`
	Score  float64         `json:"score"`
	Passed bool            `json:"passed"`
}

type maskResponse struct {
	poetic.MaskResult
	Defects []poetic.Defect `json:"defects"`
}

type annotateResponse struct {
	Annotated string `json:"annotated"`
}

type toneResponse struct {
	poetic.Syllable
}

type rhymesResponse struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	KernelA   string   `json:"kernel_a"`
	KernelB   string   `json:"kernel_b"`
	Rhymes    bool     `json:"rhymes"`
	Symmetric bool     `json:"symmetric"`
	RhymeSet  []string `json:"rhyme_set"`
}

type suggestResponse struct {
	Word        string   `json:"word"`
	Known       bool     `json:"known"`
	Suggestions []string `json:"suggestions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEngineError maps engine errors onto status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poetic.ErrUnknownForm):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, poetic.ErrEmptyPoem):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodePoem reads a poemRequest body and resolves its form.
func decodePoem(w http.ResponseWriter, r *http.Request, maxBytes int64) (poemRequest, poetic.FormKind, bool) {
	var body poemRequest
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return body, 0, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Poem == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'poem' field")
		return body, 0, false
	}
	form, err := poetic.ParseForm(body.Form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return body, 0, false
	}
	return body, form, true
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(eng *poetic.Engine, cfg *config.Config, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, form, ok := decodePoem(w, r, cfg.Server.MaxBodyBytes)
		if !ok {
			return
		}
		a, err := eng.Analyze(body.Poem, form)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		m.observe(a)
		writeJSON(w, http.StatusOK, a)
	}
}

func handleScore(eng *poetic.Engine, cfg *config.Config, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, form, ok := decodePoem(w, r, cfg.Server.MaxBodyBytes)
		if !ok {
			return
		}
		a, err := eng.Analyze(body.Poem, form)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		m.observe(a)
		writeJSON(w, http.StatusOK, scoreResponse{Form: form, Score: a.Score, Passed: a.Passed})
	}
}

func handleMask(eng *poetic.Engine, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, form, ok := decodePoem(w, r, cfg.Server.MaxBodyBytes)
		if !ok {
			return
		}
		defects := body.Defects
		if defects == nil {
			a, err := eng.Analyze(body.Poem, form)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			defects = a.Defects
		}
		writeJSON(w, http.StatusOK, maskResponse{
			MaskResult: eng.Mask(body.Poem, form, defects),
			Defects:    defects,
		})
	}
}

func handleAnnotate(eng *poetic.Engine, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, form, ok := decodePoem(w, r, cfg.Server.MaxBodyBytes)
		if !ok {
			return
		}
		out, err := eng.Annotate(body.Poem, form)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, annotateResponse{Annotated: out})
	}
}

func handleTone(eng *poetic.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		writeJSON(w, http.StatusOK, toneResponse{eng.Analyzer().Syllable(word, 1, 1)})
	}
}

func handleRhymes(eng *poetic.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		a, b := r.URL.Query().Get("a"), r.URL.Query().Get("b")
		if a == "" || b == "" {
			writeError(w, http.StatusBadRequest, "missing 'a' or 'b' query parameter")
			return
		}
		ka := eng.Analyzer().SplitKernel(a)
		set := eng.Tables().RhymeSet(ka)
		if set == nil {
			set = []string{}
		}
		writeJSON(w, http.StatusOK, rhymesResponse{
			A:         a,
			B:         b,
			KernelA:   ka,
			KernelB:   eng.Analyzer().SplitKernel(b),
			Rhymes:    eng.Rhymes().Rhymes(a, b),
			Symmetric: eng.Rhymes().Symmetric(a, b),
			RhymeSet:  set,
		})
	}
}

func handleSuggest(eng *poetic.Engine, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		n := cfg.Engine.SuggestionLimit
		if raw := r.URL.Query().Get("n"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid 'n' %q", raw))
				return
			}
			n = v
		}
		sugg := eng.Suggest(word, n)
		if sugg == nil {
			sugg = []string{}
		}
		writeJSON(w, http.StatusOK, suggestResponse{
			Word:        word,
			Known:       eng.SpellChecker().Known(word),
			Suggestions: sugg,
		})
	}
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ---- routing ------------------------------------------------------------

// newHandler wires every route behind request IDs, access logging and CORS.
func newHandler(eng *poetic.Engine, cfg *config.Config, log *zap.Logger, reg *prometheus.Registry) http.Handler {
	m := newMetrics(reg)

	mux := http.NewServeMux()
	route := func(pattern string, h http.Handler) {
		mux.Handle(pattern, m.instrument(pattern, h))
	}
	route("/api/analyze", handleAnalyze(eng, cfg, m))
	route("/api/score", handleScore(eng, cfg, m))
	route("/api/mask", handleMask(eng, cfg))
	route("/api/annotate", handleAnnotate(eng, cfg))
	route("/api/tone", handleTone(eng))
	route("/api/rhymes", handleRhymes(eng))
	route("/api/suggest", handleSuggest(eng, cfg))
	route("/healthz", handleHealth())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.Origins(),
		AllowedMethods: cfg.CORS.Methods(),
		AllowedHeaders: cfg.CORS.Headers(),
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         cfg.CORS.MaxAge,
	})
	return requestID(accessLog(log, c.Handler(mux)))
}
