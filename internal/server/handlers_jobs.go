package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// handleListJobs lists job postings. Unauthenticated callers browse active
// postings; filters arrive as query parameters.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := db.ListJobsOptions{
		Search:         q.Get("search"),
		TitleOrSkill:   q.Get("skill"),
		Location:       q.Get("location"),
		JobType:        q.Get("job_type"),
		ExperienceBand: q.Get("experience"),
		HasSalary:      q.Get("has_salary") == "true",
		Status:         db.JobStatusActive,
	}
	if q.Get("include_closed") == "true" {
		opts.Status = ""
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		opts.Offset = offset
	}

	jobs, err := s.db.ListJobs(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// jobDetailResponse is a posting plus the caller's relationship to it. The
// flags are only present for authenticated candidates.
type jobDetailResponse struct {
	db.Job
	HasApplied *bool `json:"has_applied,omitempty"`
	Saved      *bool `json:"saved,omitempty"`
}

// handleGetJob returns one job posting by ID. The route is public, but a
// candidate sending a valid token also gets applied/saved flags for the
// posting.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	resp := jobDetailResponse{Job: *job}
	if identity := s.optionalIdentity(r); identity != nil && identity.Role == string(db.RoleCandidate) {
		applied, err := s.db.HasApplied(r.Context(), id, identity.UserID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
			return
		}
		savedIDs, err := s.db.ListSavedJobIDs(r.Context(), identity.UserID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
			return
		}
		saved := false
		for _, savedID := range savedIDs {
			if savedID == id {
				saved = true
				break
			}
		}
		resp.HasApplied = &applied
		resp.Saved = &saved
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCreateJob posts a new job listing on behalf of the HR caller.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job := &db.Job{
		Title:              req.Title,
		Company:            req.Company,
		Location:           req.Location,
		JobType:            req.JobType,
		ExperienceRequired: req.ExperienceRequired,
		SalaryRange:        req.SalaryRange,
		SkillsRequired:     req.SkillsRequired,
		Description:        req.Description,
		Requirements:       req.Requirements,
		Status:             db.JobStatusActive,
		PostedBy:           &auth.UserID,
	}
	id, err := s.db.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	if err := s.db.LogActivity(r.Context(), auth.UserID, db.ActionJobPosted, req.Title); err != nil {
		s.logger.Warn("failed to log job posting activity",
			zap.String("job_id", id.String()),
			zap.Error(err))
	}

	created, err := s.db.GetJob(r.Context(), id)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to retrieve created job")
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateJob edits an existing job listing.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	existing.Title = req.Title
	existing.Company = req.Company
	existing.Location = req.Location
	existing.JobType = req.JobType
	existing.ExperienceRequired = req.ExperienceRequired
	existing.SalaryRange = req.SalaryRange
	existing.SkillsRequired = req.SkillsRequired
	existing.Description = req.Description
	existing.Requirements = req.Requirements

	if err := s.db.UpdateJob(r.Context(), existing); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	s.jsonResponse(w, http.StatusOK, existing)
}

// handleCloseJob retires a listing. The row is kept so existing applications
// stay attached; the posting just stops accepting new ones.
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	if err := s.db.CloseJob(r.Context(), id); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to close job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": db.JobStatusClosed})
}
