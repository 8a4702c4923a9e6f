package server

import (
	"net/http"
)

// handleHRDashboard returns aggregate counts plus the recent activity feed.
func (s *Server) handleHRDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.HRDashboardStats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	activity, err := s.db.ListActivity(r.Context(), 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load activity")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"stats":    stats,
		"activity": activity,
	})
}

// handleCandidateDashboard returns the caller's application counts by status.
func (s *Server) handleCandidateDashboard(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := s.db.CandidateDashboardStats(r.Context(), auth.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}
