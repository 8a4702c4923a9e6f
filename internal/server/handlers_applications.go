package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// handleApply submits an application for the job in the path. The request is
// either JSON with a cover letter, or multipart form data with an optional
// "resume" file part whose parsed content refreshes the candidate profile
// before scoring.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	in := ApplyInput{JobID: jobID}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		in.CoverLetter = r.FormValue("cover_letter")

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				s.errorResponse(w, http.StatusBadRequest, "Failed to read resume upload")
				return
			}
			in.ResumeName = header.Filename
			in.ResumeData = data
		} else if err != http.ErrMissingFile {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume upload")
			return
		}
	} else {
		var req types.ApplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		in.CoverLetter = req.CoverLetter
	}

	app, err := s.applicationService.Apply(r.Context(), auth, in)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListApplicants returns the HR applicant view across all jobs,
// optionally filtered by status or job.
func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := db.ListApplicantsOptions{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid job_id")
			return
		}
		opts.JobID = &jobID
	}

	applicants, err := s.applicationService.ListApplicants(r.Context(), auth, opts)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if applicants == nil {
		applicants = []db.Applicant{}
	}
	s.jsonResponse(w, http.StatusOK, applicants)
}

// handleListJobApplicants returns applicants for the one job in the path.
func (s *Server) handleListJobApplicants(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	opts := db.ListApplicantsOptions{
		Status: r.URL.Query().Get("status"),
		JobID:  &jobID,
	}
	applicants, err := s.applicationService.ListApplicants(r.Context(), auth, opts)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if applicants == nil {
		applicants = []db.Applicant{}
	}
	s.jsonResponse(w, http.StatusOK, applicants)
}

// handleMyApplications returns the caller's applications with job context.
func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.applicationService.ListMine(r.Context(), auth)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if apps == nil {
		apps = []db.CandidateApplication{}
	}
	s.jsonResponse(w, http.StatusOK, apps)
}

// handleUpdateApplicationStatus moves an application to a new status.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applicationID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.applicationService.UpdateStatus(r.Context(), auth, applicationID, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}
