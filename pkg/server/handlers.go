package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// classifyRequest is the body of POST /v1/classify.
type classifyRequest struct {
	Text string `json:"text"`
}

// classifyResponse is the response body for a successful classification.
type classifyResponse struct {
	RequestID  string   `json:"request_id"`
	Label      string   `json:"label"`
	Kind       string   `json:"kind"`
	Score      *float64 `json:"score,omitempty"`
	Rule       string   `json:"rule,omitempty"`
	DurationMS float64  `json:"duration_ms"`
}

// errorResponse is the response body for failures.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// handleClassify classifies one sentence per request.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	body := http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes)
	var req classifyRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, requestID, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		s.writeError(w, requestID, http.StatusBadRequest, "text cannot be empty")
		return
	}

	result, err := s.manager.Current().ClassifyText(r.Context(), req.Text)
	if err != nil {
		s.logger.Error("classification failed",
			"request_id", requestID,
			"error", err,
		)
		s.writeError(w, requestID, http.StatusInternalServerError, "classification failed")
		return
	}

	resp := classifyResponse{
		RequestID:  requestID,
		Label:      string(result.Label),
		Kind:       string(result.Kind),
		Rule:       result.Rule,
		DurationMS: float64(result.EvaluationTime.Microseconds()) / 1000.0,
	}
	if result.HasScore {
		score := result.Score
		resp.Score = &score
	}

	s.logger.Debug("classified",
		"request_id", requestID,
		"label", resp.Label,
		"kind", resp.Kind,
	)

	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness and basic readiness (a rule table is loaded).
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"status": "ok",
		"rules":  s.manager.Current().Rules().Len(),
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, status int, msg string) {
	s.writeJSON(w, status, errorResponse{RequestID: requestID, Error: msg})
}
