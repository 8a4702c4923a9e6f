package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-board/internal/types"
)

// handleChatbotQuery answers a free-text query with the intent dispatcher.
func (s *Server) handleChatbotQuery(w http.ResponseWriter, r *http.Request) {
	var req types.ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resp, err := s.chatbot.Query(r.Context(), req.Message)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to answer query")
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleChatbotJobDetails returns one posting for the chatbot detail view.
func (s *Server) handleChatbotJobDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.chatbot.JobDetails(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}
