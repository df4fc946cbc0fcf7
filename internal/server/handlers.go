package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cfgexplorer/pkg/buildinfo"
	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/render/sink"
	"github.com/matzehuels/cfgexplorer/pkg/session"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// =============================================================================
// Request and Response Bodies
// =============================================================================

type createResponse struct {
	ID        string `json:"id"`
	Crate     string `json:"crate"`
	Functions int    `json:"functions"`
}

type stateResponse struct {
	Function     int               `json:"function"`
	Current      int               `json:"current"`
	SelectedEdge int               `json:"selected_edge"`
	Path         []int             `json:"path"`
	Viewport     viewport.Viewport `json:"viewport"`
}

type functionEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type functionsResponse struct {
	Crate     string          `json:"crate"`
	Selected  int             `json:"selected"`
	Functions []functionEntry `json:"functions"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type keyResponse struct {
	Handled bool          `json:"handled"`
	State   stateResponse `json:"state"`
}

type wheelRequest struct {
	DeltaY float64 `json:"delta_y"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type dragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// =============================================================================
// Sessions
// =============================================================================

type sessionKey struct{}

// withSession resolves {id} and stores the session in the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(sessionKey{}).(*session.Session)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxDocumentBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document"))
		return
	}
	if len(body) == 0 {
		if s.opts.Document == nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "no document in request and none served by default"))
			return
		}
		body = s.opts.Document
	}

	surface := sink.NewSVG(s.opts.Canvas)
	ex, err := explorer.New(surface, explorer.NopPanel{},
		explorer.WithLogger(s.logger),
		explorer.WithHooks(s.metrics),
		explorer.WithTheme(s.opts.Theme),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := ex.Load(body); err != nil {
		writeError(w, err)
		return
	}

	sess, err := session.New(ex, surface)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	s.metrics.OnSessionCount(r.Context(), s.store.Len())

	crate, _ := ex.CrateName()
	s.logger.Debug("session created", "id", sess.ID, "crate", crate)
	writeJSON(w, http.StatusCreated, createResponse{ID: sess.ID, Crate: crate, Functions: ex.FunctionCount()})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = s.store.Delete(r.Context(), sess.ID)
	s.metrics.OnSessionCount(r.Context(), s.store.Len())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Queries
// =============================================================================

func stateOf(ex *explorer.Explorer) stateResponse {
	current, _ := ex.Current()
	path := ex.Path()
	if path == nil {
		path = []int{}
	}
	return stateResponse{
		Function:     ex.SelectedFunction(),
		Current:      current,
		SelectedEdge: ex.SelectedEdge(),
		Path:         path,
		Viewport:     ex.Viewport(),
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, stateOf(sess.Explorer))
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	frame := sess.Surface.Bytes()
	sess.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(frame)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	info, ok := sess.Explorer.BlockInfoJSON()
	sess.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no current block"))
		return
	}
	writeRawJSON(w, info)
}

func (s *Server) handleLocals(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	locals, ok := sess.Explorer.LocalsJSON()
	sess.Unlock()
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no function selected"))
		return
	}
	writeRawJSON(w, locals)
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()

	ex := sess.Explorer
	crate, _ := ex.CrateName()
	resp := functionsResponse{Crate: crate, Selected: ex.SelectedFunction()}
	for i := range ex.FunctionCount() {
		name, _ := ex.FunctionName(i)
		resp.Functions = append(resp.Functions, functionEntry{Index: i, Name: name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"build":    buildinfo.Get(),
		"sessions": s.store.Len(),
	})
}

// =============================================================================
// Commands
// =============================================================================

// command decodes a JSON body into T (when T is not struct{}), runs fn under
// the session lock and replies with the resulting state.
func command[T any](decode bool, fn func(ex *explorer.Explorer, req T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if decode {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
				return
			}
		}
		sess := sessionFrom(r)
		sess.Lock()
		defer sess.Unlock()
		fn(sess.Explorer, req)
		writeJSON(w, http.StatusOK, stateOf(sess.Explorer))
	}
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := errors.ValidateKeyName(req.Key); err != nil {
		writeError(w, err)
		return
	}
	sess := sessionFrom(r)
	sess.Lock()
	defer sess.Unlock()
	handled := sess.Explorer.HandleKey(req.Key)
	writeJSON(w, http.StatusOK, keyResponse{Handled: handled, State: stateOf(sess.Explorer)})
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	command(true, func(ex *explorer.Explorer, req wheelRequest) {
		ex.HandleWheel(req.DeltaY, req.X, req.Y)
	})(w, r)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	command(true, func(ex *explorer.Explorer, req dragRequest) {
		ex.HandleDrag(req.DX, req.DY)
	})(w, r)
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	command(false, func(ex *explorer.Explorer, _ struct{}) {
		ex.FitToView()
	})(w, r)
}

func (s *Server) handleSelectFunction(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "function index %q is not a number", chi.URLParam(r, "index")))
		return
	}
	command(false, func(ex *explorer.Explorer, _ struct{}) {
		ex.SelectFunction(index)
	})(w, r)
}
