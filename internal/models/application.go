package models

import "time"

const (
	UntitledRole   = "Untitled role"
	UnknownCompany = "Unknown company"
)

// JobSnapshot is the denormalized job description an application is made
// against. It usually arrives through URL query parameters.
type JobSnapshot struct {
	Title    string `json:"title" form:"title"`
	Company  string `json:"company" form:"company"`
	Location string `json:"location" form:"location"`
	Role     string `json:"role" form:"role"`
}

func (s JobSnapshot) DisplayTitle() string {
	if s.Title == "" {
		return UntitledRole
	}
	return s.Title
}

func (s JobSnapshot) DisplayCompany() string {
	if s.Company == "" {
		return UnknownCompany
	}
	return s.Company
}

type Application struct {
	Job   JobSnapshot `json:"job"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Cover string      `json:"cover"`

	ResumeName    string `json:"resumeName"`
	ResumeType    string `json:"resumeType"`              // MIME type
	ResumeDataURL string `json:"resumeDataUrl,omitempty"` // data:<mime>;base64,<content>
	ResumePath    string `json:"resumePath,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
}
