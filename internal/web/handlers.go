package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/prefs"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

const paramCount = "count"

type prefsBody struct {
	Compact *bool `json:"compact"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFeatures answers with one catalog page for the request's query
// string, read the same way the catalog page reads its own.
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	count := 0
	if raw := query.Get(paramCount); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "count must be a non-negative integer"})
			return
		}
		count = n
	}

	session := s.session(r)
	e := catalog.NewEngine(s.source, prefs.NewBridge(&sessionPrefs{session: session}), catalog.Options{
		BaseURL: s.baseURL,
		Query:   query,
	})
	defer e.Unmount()
	if err := e.Load(r.Context()); err != nil {
		s.writeCatalogError(w, err)
		return
	}
	e.RevealTo(count)

	writeJSON(w, http.StatusOK, catalog.NewPage(e.Snapshot(), false))
}

func (s *Server) handleFeature(w http.ResponseWriter, r *http.Request) {
	e := catalog.NewEngine(s.source, nil, catalog.Options{})
	defer e.Unmount()
	if err := e.Load(r.Context()); err != nil {
		s.writeCatalogError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	f, ok := catalog.Find(e.Features(), name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "feature " + strconv.Quote(name) + " not found"})
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	bridge := prefs.NewBridge(&sessionPrefs{session: s.session(r)})
	compact := bridge.CompactMode()
	writeJSON(w, http.StatusOK, prefsBody{Compact: &compact})
}

func (s *Server) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	var body prefsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Compact == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: `body must be {"compact": true|false}`})
		return
	}

	store := &sessionPrefs{session: s.session(r)}
	prefs.NewBridge(store).SetCompactMode(*body.Compact)
	if store.dirty {
		if err := store.session.Save(r, w); err != nil {
			s.logger.Debug("preference cookie not saved", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// session returns the preference session. A cookie that fails to decode
// yields a fresh session rather than an error.
func (s *Server) session(r *http.Request) *sessions.Session {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		s.logger.Debug("discarding unreadable session", "error", err)
	}
	return session
}

func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if catalog.IsFetchError(err) || catalog.IsParseError(err) {
		status = http.StatusBadGateway
	}
	s.logger.Warn("catalog unavailable", "error", err)
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
