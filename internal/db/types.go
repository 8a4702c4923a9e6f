package db

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the board a user is on.
type Role string

const (
	RoleHR        Role = "HR"
	RoleCandidate Role = "CANDIDATE"
)

// ValidRole reports whether s is a recognized role.
func ValidRole(s string) bool {
	return Role(s) == RoleHR || Role(s) == RoleCandidate
}

// Job posting statuses.
const (
	JobStatusActive = "Active"
	JobStatusClosed = "Closed"
)

// Application statuses. Creation always starts at Applied; the rest are
// HR-driven. Closed is terminal and reachable from any status.
const (
	StatusApplied     = "Applied"
	StatusInReview    = "In Review"
	StatusShortlisted = "Shortlisted"
	StatusInterview   = "Interview"
	StatusOffered     = "Offered"
	StatusRejected    = "Rejected"
	StatusClosed      = "Closed"
)

// ApplicationStatuses lists every recognized application status.
var ApplicationStatuses = []string{
	StatusApplied,
	StatusInReview,
	StatusShortlisted,
	StatusInterview,
	StatusOffered,
	StatusRejected,
	StatusClosed,
}

// ValidApplicationStatus reports whether s is a recognized application status.
func ValidApplicationStatus(s string) bool {
	for _, st := range ApplicationStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// User represents a registered user. Candidate-only profile fields are left
// empty for HR users. Skills is the comma-delimited persistence form; use
// match.ParseSkills to get the token set.
type User struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	Phone            string    `json:"phone,omitempty"`
	Location         string    `json:"location,omitempty"`
	Skills           string    `json:"skills,omitempty"`
	ExperienceYears  int       `json:"experience_years"`
	ResumePath       string    `json:"resume_path,omitempty"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
}

// Job represents a job posting.
type Job struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	Location           string     `json:"location,omitempty"`
	JobType            string     `json:"job_type"`
	ExperienceRequired string     `json:"experience_required,omitempty"`
	SalaryRange        string     `json:"salary_range,omitempty"`
	SkillsRequired     string     `json:"skills_required,omitempty"`
	Description        string     `json:"description,omitempty"`
	Requirements       string     `json:"requirements,omitempty"`
	Status             string     `json:"status"`
	PostedBy           *uuid.UUID `json:"posted_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Application pairs a candidate with a job. At most one row exists per
// (job, candidate) pair; the score is a snapshot taken at apply time and is
// never recomputed on later profile edits.
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumePath  string    `json:"resume_path,omitempty"`
	Score       int       `json:"score"`
	HRNotes     string    `json:"hr_notes,omitempty"`
	AppliedOn   time.Time `json:"applied_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Applicant is the HR review view: an application joined with candidate and
// job metadata.
type Applicant struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Skills        string    `json:"skills,omitempty"`
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
	Status        string    `json:"status"`
	Score         int       `json:"score"`
	ResumePath    string    `json:"resume_path,omitempty"`
	AppliedOn     time.Time `json:"applied_on"`
}

// CandidateApplication is the candidate's own view: an application joined
// with the job it targets.
type CandidateApplication struct {
	Application
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	JobLocation string `json:"job_location,omitempty"`
	JobType     string `json:"job_type"`
}

// SavedJob is a candidate's bookmark on a posting.
type SavedJob struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	JobID       uuid.UUID `json:"job_id"`
	SavedOn     time.Time `json:"saved_on"`
}

// HRDashboard aggregates counts for the HR landing view.
type HRDashboard struct {
	TotalJobs         int `json:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
	Shortlisted       int `json:"shortlisted"`
	Interviews        int `json:"interviews"`
}

// CandidateDashboard aggregates a candidate's application counts.
type CandidateDashboard struct {
	Applied     int `json:"applied"`
	InReview    int `json:"in_review"`
	Shortlisted int `json:"shortlisted"`
	Interviews  int `json:"interviews"`
}
