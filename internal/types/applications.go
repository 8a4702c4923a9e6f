package types

import "github.com/go-playground/validator/v10"

// ApplyRequest represents the non-file fields of a job application
// submission. The resume itself arrives as a multipart file part.
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

// UpdateStatusRequest represents an HR status change on an application.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	HRNotes string `json:"hr_notes"`
}

// ChatbotRequest represents a chatbot query.
type ChatbotRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// Validate validates the UpdateStatusRequest using the validator.
func (r *UpdateStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChatbotRequest using the validator.
func (r *ChatbotRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
