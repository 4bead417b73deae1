package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/practice"
)

// maxBodyBytes bounds the submit request body.
const maxBodyBytes = 64 << 10

const msgInvalidBody = "Invalid request body"

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.generate(w, r); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

// webProblem is the generate response of the original web frontend, which
// reads problem_text.
type webProblem struct {
	SessionID        string `json:"sessionId"`
	ProblemStatement string `json:"problemStatement"`
	ProblemText      string `json:"problem_text"`
}

func (s *Server) handleGenerateWeb(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.generate(w, r); ok {
		writeJSON(w, http.StatusOK, webProblem{
			SessionID:        p.SessionID,
			ProblemStatement: p.ProblemText,
			ProblemText:      p.ProblemText,
		})
	}
}

// generate runs one generation and writes the error response on failure.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*practice.GeneratedProblem, bool) {
	p, err := s.Practice.Generate(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("problem generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, practice.UserMessage(err))
		return nil, false
	}
	return p, true
}

// submitRequest accepts sessionId and userAnswer as JSON strings or numbers.
type submitRequest struct {
	SessionID  json.RawMessage `json:"sessionId"`
	UserAnswer json.RawMessage `json:"userAnswer"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	sessionID, answer, err := decodeSubmit(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("rejected submission", "error", err)
		if errors.Is(err, errMissingField) {
			writeError(w, http.StatusBadRequest, practice.MsgMissingFields)
		} else {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
		}
		return
	}

	res, err := s.Practice.Grade(r.Context(), sessionID, answer)
	if err != nil {
		switch {
		case errors.Is(err, practice.ErrInvalidInput):
			log.Warn("grading rejected input", "error", err)
			writeError(w, http.StatusBadRequest, practice.UserMessage(err))
		case errors.Is(err, practice.ErrSessionNotFound):
			log.Warn("grading unknown session", "session_id", sessionID)
			writeError(w, http.StatusNotFound, practice.UserMessage(err))
		default:
			log.Error("grading failed", "session_id", sessionID, "error", err)
			writeError(w, http.StatusInternalServerError, practice.UserMessage(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, res)
}

var errMissingField = errors.New("missing field")

func decodeSubmit(body io.Reader) (sessionID, answer string, err error) {
	var req submitRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", "", fmt.Errorf("decode body: %w", err)
	}

	sessionID, err = scalarString(req.SessionID)
	if err != nil {
		return "", "", fmt.Errorf("sessionId: %w", err)
	}
	if strings.TrimSpace(sessionID) == "" {
		return "", "", fmt.Errorf("sessionId: %w", errMissingField)
	}

	answer, err = scalarString(req.UserAnswer)
	if err != nil {
		return "", "", fmt.Errorf("userAnswer: %w", err)
	}
	return sessionID, answer, nil
}

// scalarString renders a JSON string or number as text. Numbers keep
// their literal form. Absent and null values are errMissingField.
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errMissingField
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", raw)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether the store is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	if s.Store != nil {
		if err := s.Store.Ping(r.Context()); err != nil {
			logging.FromContext(r.Context()).Warn("store ping failed", "error", err)
			checks["store"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	writeJSON(w, status, map[string]any{"status": state, "checks": checks})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.Version})
}
