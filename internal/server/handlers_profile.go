package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/ingest"
	"github.com/jonathan/job-board/internal/match"
	"github.com/jonathan/job-board/internal/types"
)

// handleGetProfile returns the caller's own profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.GetProfile(r.Context(), auth.UserID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateProfile writes the caller's profile fields. The request is
// either JSON, or multipart form data with an optional "resume" file part
// that is stored and linked to the profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	var resumePath *string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		req.Phone = r.FormValue("phone")
		req.Location = r.FormValue("location")
		req.Skills = r.FormValue("skills")
		if raw := r.FormValue("experience_years"); raw != "" {
			years, err := strconv.Atoi(raw)
			if err != nil {
				s.errorResponse(w, http.StatusBadRequest, "Invalid experience_years")
				return
			}
			req.ExperienceYears = years
		}

		file, header, err := r.FormFile("resume")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				s.errorResponse(w, http.StatusBadRequest, "Failed to read resume upload")
				return
			}
			stored, err := s.resumes.Save(header.Filename, data)
			if err != nil {
				s.errorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			resumePath = &stored

			// Auto-fill skills and experience from the resume when the form
			// left them blank. An unreadable file just skips the fill.
			if parsed, err := ingest.Parse(data); err == nil {
				if req.Skills == "" {
					req.Skills = match.JoinSkills(parsed.Skills)
				}
				if req.ExperienceYears == 0 {
					req.ExperienceYears = parsed.ExperienceYears
				}
			}
		} else if err != http.ErrMissingFile {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), auth.UserID, &req, resumePath)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}

// handleDownloadResume streams a stored resume file.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	data, err := s.resumes.Read(name)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := w.Write(data); err != nil {
		return
	}
}

// handleListSavedJobs returns the caller's saved jobs, most recent first.
func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, err := s.db.ListSavedJobs(r.Context(), auth.UserID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list saved jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleSaveJob bookmarks a job for the caller. Saving twice is a conflict.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := pathUUID(r, "job_id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	if err := s.db.SaveJob(r.Context(), auth.UserID, jobID); err != nil {
		if err == db.ErrDuplicate {
			s.errorResponse(w, http.StatusConflict, "Job already saved")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save job")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// handleUnsaveJob removes a bookmark. Removing an absent bookmark succeeds.
func (s *Server) handleUnsaveJob(w http.ResponseWriter, r *http.Request) {
	auth, err := s.authContext(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobID, err := pathUUID(r, "job_id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := s.db.UnsaveJob(r.Context(), auth.UserID, jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to unsave job")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "removed"})
}
