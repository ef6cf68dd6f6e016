package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxJobDescriptionLength caps pasted job description text.
const MaxJobDescriptionLength = 100000

var validate = validator.New()

// RequestError is a user-facing validation failure for a submitted form.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// AnalyzeRequest captures the upload form state for one analysis submission.
type AnalyzeRequest struct {
	Mode           Mode   `validate:"oneof=1 2 4"`
	ResumeCount    int    `validate:"gte=0,lte=20"`
	JobDescription string `validate:"max=100000"`
	HasExcel       bool
}

// Validate checks the submission for the selected mode.
func (r *AnalyzeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return translate(err)
	}

	switch r.Mode {
	case ModeResume:
		if r.ResumeCount == 0 {
			return &RequestError{Field: "resume", Message: "Resume file is required"}
		}
	case ModeJobMatch:
		if r.ResumeCount == 0 {
			return &RequestError{Field: "resume", Message: "Resume file is required"}
		}
		if strings.TrimSpace(r.JobDescription) == "" {
			return &RequestError{Field: "jd", Message: "Job description is required"}
		}
	case ModeBulkJD:
		if r.ResumeCount == 0 {
			return &RequestError{Field: "resumes", Message: "At least one resume file is required"}
		}
		if !r.HasExcel {
			return &RequestError{Field: "jobDescriptions", Message: "Job descriptions Excel file is required"}
		}
	}
	return nil
}

// RenameRequest is the file renamer form.
type RenameRequest struct {
	CompanyName string `validate:"required,max=200"`
	RoleName    string `validate:"required,max=200"`
	UserName    string `validate:"omitempty,max=200"`
	HasFile     bool   `validate:"eq=true"`
}

// Normalize trims surrounding whitespace from every text field.
func (r *RenameRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.RoleName = strings.TrimSpace(r.RoleName)
	r.UserName = strings.TrimSpace(r.UserName)
}

// Validate normalizes the request and checks required fields.
func (r *RenameRequest) Validate() error {
	r.Normalize()
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" || fe.Tag() == "eq" {
					return &RequestError{
						Field:   fe.Field(),
						Message: "Please select a file and fill in company and role names.",
					}
				}
			}
		}
		return translate(err)
	}
	return nil
}

// ScoreRange bounds a score query.
type ScoreRange struct {
	Min float64 `validate:"gte=0,lte=10"`
	Max float64 `validate:"gte=0,lte=10,gtefield=Min"`
}

// Validate checks 0 <= Min <= Max <= 10.
func (r ScoreRange) Validate() error {
	if err := validate.Struct(r); err != nil {
		return translate(err)
	}
	return nil
}

// translate converts validator errors into a RequestError naming the first failing field.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg := fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("%s failed %s=%s validation", fe.Field(), fe.Tag(), fe.Param())
	}
	return &RequestError{Field: fe.Field(), Message: msg}
}
