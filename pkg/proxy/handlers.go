package proxy

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/amplistack/amplistack/pkg/errors"
	"github.com/amplistack/amplistack/pkg/snapshot"
	"github.com/amplistack/amplistack/pkg/store"
)

type transcriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	Source     string `json:"source" validate:"omitempty,max=64"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"model":  s.completer != nil,
		"store":  s.store != nil,
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Transcript = strings.TrimSpace(req.Transcript)
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), "")
		return
	}
	if s.completer == nil {
		writeError(w, http.StatusInternalServerError, "Missing Gemini API key on server.", "")
		return
	}

	data, err := s.completer.Complete(r.Context(), req.Transcript)
	if err != nil {
		status := errors.StatusOf(err, http.StatusInternalServerError)
		s.log.Error("AI transcript error", "status", status, "source", req.Source, "err", err)
		writeError(w, status, "AI request failed", errors.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: data})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Field() == "Transcript" {
			return "Transcript is required."
		}
		return strings.ToLower(fe.Field()) + " is invalid"
	}
	return err.Error()
}

// decode reads a JSON body limited to the configured size. It writes the
// error response itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.", "")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.", err.Error())
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.", err.Error())
		return false
	}
	return true
}

func (s *Server) readSnapshot(w http.ResponseWriter, r *http.Request) (*snapshot.Snapshot, bool) {
	var raw json.RawMessage
	if !s.decode(w, r, &raw) {
		return nil, false
	}
	snap, err := snapshot.Unmarshal(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid diagram.", err.Error())
		return nil, false
	}
	return snap, true
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return
	}
	id := store.NewID()
	if err := s.store.Put(r.Context(), id, snap); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readSnapshot(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.store.Put(r.Context(), id, snap); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{ID: id})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	data, err := snapshot.Marshal(snap)
	if err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("diagram store error", "err", err)
	}
	writeError(w, status, errors.UserMessage(err), "")
}
