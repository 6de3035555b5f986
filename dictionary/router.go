package dictionary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/dicofr/definition"
	"github.com/hazyhaar/dicofr/shield"
)

// ParseRequest is the body of POST /api/parse. A nil MaxSenses uses the
// configured default; 0 parses the header only.
type ParseRequest struct {
	HTML      string `json:"html"`
	MaxSenses *int   `json:"max_senses,omitempty"`
}

func sensesOrDefault(n *int) int {
	if n == nil {
		return DefaultSenses
	}
	return *n
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	for _, mw := range shield.DefaultAPIStack(s.logger) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "words": s.words.Len()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/definitions", s.handleLookup)
		r.Post("/parse", s.handleParse)
		r.Get("/search", s.handleSearch)
		r.Get("/history", s.handleHistory)
		r.Delete("/history", s.handleClearHistory)
		r.Delete("/history/{word}", s.handleDeleteHistory)
	})
	return r
}

func (s *Service) handleLookup(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, ErrWordRequired)
		return
	}
	e, err := s.Lookup(r.Context(), word, queryInt(r, "senses", DefaultSenses))
	if err != nil {
		if errors.Is(err, ErrWordRequired) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.logger.Warn("dictionary: lookup failed", "word", word, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Service) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := s.Parse(req.HTML, sensesOrDefault(req.MaxSenses))
	writeJSON(w, http.StatusOK, struct {
		definition.Result
		NoResult bool `json:"no_result"`
	}{res, req.HTML != "" && res.Empty()})
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Suggest(r.URL.Query().Get("term")))
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.History(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make(map[string]string, len(items))
	for _, e := range items {
		out[e.Word] = e.Definition
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	ok, err := s.DeleteHistory(r.Context(), word)
	if err != nil {
		if errors.Is(err, ErrWordRequired) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not in history", "word": word})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": normalizeWord(word)})
}

func (s *Service) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := s.ClearHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"cleared": n})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
