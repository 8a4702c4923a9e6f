// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/ingest"
	"github.com/jonathan/job-board/internal/match"
	"github.com/jonathan/job-board/internal/storage"
	"github.com/jonathan/job-board/internal/types"
)

// AuthContext identifies the authenticated caller of a workflow operation.
type AuthContext struct {
	UserID uuid.UUID
	Role   db.Role
}

// ApplicationStore is the slice of the database layer the application
// service depends on.
type ApplicationStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	UpdateCandidateAttributes(ctx context.Context, userID uuid.UUID, skills string, experienceYears int) error
	CreateApplication(ctx context.Context, app *db.Application) (uuid.UUID, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, hrNotes string) error
	ListApplicants(ctx context.Context, opts db.ListApplicantsOptions) ([]db.Applicant, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]db.CandidateApplication, error)
	LogActivity(ctx context.Context, userID uuid.UUID, action, details string) error
}

// ResumeSaver persists an uploaded resume and returns its stored name.
type ResumeSaver interface {
	Save(originalName string, data []byte) (string, error)
}

// ApplicationService provides business logic for the application workflow
type ApplicationService struct {
	db      ApplicationStore
	resumes ResumeSaver
	extract func(data []byte) (string, error) // resume text extraction, swappable in tests
	logger  *zap.Logger
}

// NewApplicationService creates a new ApplicationService with the given dependencies
func NewApplicationService(db ApplicationStore, resumes ResumeSaver, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		db:      db,
		resumes: resumes,
		extract: ingest.ExtractText,
		logger:  logger,
	}
}

// ApplyInput carries one application submission.
type ApplyInput struct {
	JobID       uuid.UUID
	CoverLetter string
	ResumeName  string // original upload filename, empty when no file was sent
	ResumeData  []byte
}

// Apply submits an application on behalf of the authenticated candidate.
//
// When a resume is uploaded its text is parsed and the derived skills and
// experience overwrite the candidate's stored attributes before scoring, so
// the newest resume always wins. An unreadable resume falls back to the
// skills already on the profile. A duplicate submission for the same job is
// rejected, but any profile update from the resume parse is kept.
func (s *ApplicationService) Apply(ctx context.Context, auth AuthContext, in ApplyInput) (*db.Application, error) {
	if auth.Role != db.RoleCandidate {
		return nil, &ErrForbidden{}
	}

	job, err := s.db.GetJob(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, &ErrJobNotFound{JobID: in.JobID}
	}
	if job.Status == db.JobStatusClosed {
		return nil, &ErrJobClosed{JobID: in.JobID}
	}

	user, err := s.db.GetUser(ctx, auth.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: auth.UserID}
	}
	if !user.ProfileCompleted {
		return nil, &ErrProfileIncomplete{}
	}

	candidateSkills := match.ParseSkills(user.Skills)
	resumePath := user.ResumePath

	if len(in.ResumeData) > 0 {
		if !storage.Allowed(in.ResumeName) {
			return nil, &ErrValidation{Field: "resume", Message: "unsupported resume format"}
		}
		stored, err := s.resumes.Save(in.ResumeName, in.ResumeData)
		if err != nil {
			return nil, &ErrValidation{Field: "resume", Message: err.Error()}
		}
		resumePath = stored

		text, err := s.extract(in.ResumeData)
		if err != nil {
			// Unreadable resumes are kept on file but scored from the
			// profile skills instead.
			s.logger.Warn("resume text extraction failed, scoring from profile",
				zap.String("candidate_id", auth.UserID.String()),
				zap.Error(err))
		} else {
			parsed := ingest.Analyze(text)
			if err := s.db.UpdateCandidateAttributes(ctx, auth.UserID,
				match.JoinSkills(parsed.Skills), parsed.ExperienceYears); err != nil {
				return nil, fmt.Errorf("failed to update candidate attributes: %w", err)
			}
			candidateSkills = parsed.Skills
		}
	}

	score := match.Score(candidateSkills, match.ParseSkills(job.SkillsRequired))

	app := &db.Application{
		JobID:       in.JobID,
		CandidateID: auth.UserID,
		CoverLetter: in.CoverLetter,
		ResumePath:  resumePath,
		Score:       score,
	}
	id, err := s.db.CreateApplication(ctx, app)
	if err != nil {
		if err == db.ErrDuplicate {
			return nil, &ErrDuplicateApplication{}
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	// The application is committed at this point; the activity trail is
	// advisory, so a logging failure must not fail the submission.
	if err := s.db.LogActivity(ctx, auth.UserID, db.ActionApplication, job.Title); err != nil {
		s.logger.Warn("failed to log application activity",
			zap.String("candidate_id", auth.UserID.String()),
			zap.Error(err))
	}

	created, err := s.db.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created application: %w", err)
	}
	return created, nil
}

// UpdateStatus moves an application to a new status on behalf of an HR user.
// Any member of the status set is reachable from any other; only membership
// is validated.
func (s *ApplicationService) UpdateStatus(ctx context.Context, auth AuthContext, applicationID uuid.UUID, req *types.UpdateStatusRequest) (*db.Application, error) {
	if auth.Role != db.RoleHR {
		return nil, &ErrForbidden{}
	}
	if !db.ValidApplicationStatus(req.Status) {
		return nil, &ErrInvalidStatus{Status: req.Status}
	}

	app, err := s.db.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, &ErrApplicationNotFound{ApplicationID: applicationID}
	}

	if err := s.db.UpdateApplicationStatus(ctx, applicationID, req.Status, req.HRNotes); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	if err := s.db.LogActivity(ctx, auth.UserID, db.ActionStatusChange,
		fmt.Sprintf("%s -> %s", app.Status, req.Status)); err != nil {
		s.logger.Warn("failed to log status change activity",
			zap.String("application_id", applicationID.String()),
			zap.Error(err))
	}

	updated, err := s.db.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated application: %w", err)
	}
	return updated, nil
}

// ListApplicants returns the HR view of applications, optionally filtered.
func (s *ApplicationService) ListApplicants(ctx context.Context, auth AuthContext, opts db.ListApplicantsOptions) ([]db.Applicant, error) {
	if auth.Role != db.RoleHR {
		return nil, &ErrForbidden{}
	}
	applicants, err := s.db.ListApplicants(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

// ListMine returns the authenticated candidate's applications with job
// context, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, auth AuthContext) ([]db.CandidateApplication, error) {
	if auth.Role != db.RoleCandidate {
		return nil, &ErrForbidden{}
	}
	apps, err := s.db.ListApplicationsByCandidate(ctx, auth.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}
