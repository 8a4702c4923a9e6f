package types

import "github.com/go-playground/validator/v10"

// CreateJobRequest represents the request to post a new job listing.
type CreateJobRequest struct {
	Title              string `json:"title" validate:"required,min=1"`
	Company            string `json:"company" validate:"required,min=1"`
	Location           string `json:"location" validate:"required,min=1"`
	JobType            string `json:"job_type" validate:"required,oneof=Full-time Part-time Contract Internship"`
	ExperienceRequired string `json:"experience_required"`
	SalaryRange        string `json:"salary_range"`
	SkillsRequired     string `json:"skills_required" validate:"required,min=1"`
	Description        string `json:"description" validate:"required,min=1"`
	Requirements       string `json:"requirements"`
}

// UpdateJobRequest represents an edit to an existing job listing.
type UpdateJobRequest struct {
	Title              string `json:"title" validate:"required,min=1"`
	Company            string `json:"company" validate:"required,min=1"`
	Location           string `json:"location" validate:"required,min=1"`
	JobType            string `json:"job_type" validate:"required,oneof=Full-time Part-time Contract Internship"`
	ExperienceRequired string `json:"experience_required"`
	SalaryRange        string `json:"salary_range"`
	SkillsRequired     string `json:"skills_required" validate:"required,min=1"`
	Description        string `json:"description" validate:"required,min=1"`
	Requirements       string `json:"requirements"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
