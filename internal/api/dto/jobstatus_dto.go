package dto

import (
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Deadline values are accepted either as a bare date or a full timestamp.
const deadlineLayout = "2006-01-02"

// CreateJobStatusRequest is the payload for POST /jobstatus.
type CreateJobStatusRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	JobType  string  `json:"job_type" validate:"required"`
	Payment  float64 `json:"payment" validate:"gte=0"`
	Deadline string  `json:"deadline" validate:"required"`
	Status   string  `json:"status"`
}

// Validate checks required fields, the status enumeration and the
// deadline format. It returns the parsed deadline on success.
func (r *CreateJobStatusRequest) Validate() (time.Time, error) {
	if err := validate.Struct(r); err != nil {
		return time.Time{}, toValidationError(err)
	}

	if r.Status != "" && !domain.ValidJobStatus(r.Status) {
		return time.Time{}, domain.NewValidationError("status", "must be one of pending, accepted, completed, saved")
	}

	deadline, err := ParseDeadline(r.Deadline)
	if err != nil {
		return time.Time{}, domain.NewValidationError("deadline", "must be a date (2006-01-02) or RFC3339 timestamp")
	}

	return deadline, nil
}

// UpdateJobStatusRequest is the payload for PUT /jobstatus/:id. Every
// field is optional; only present fields are merged into the record.
type UpdateJobStatusRequest struct {
	Category *string  `json:"category"`
	Title    *string  `json:"title"`
	JobType  *string  `json:"job_type"`
	Payment  *float64 `json:"payment"`
	Deadline *string  `json:"deadline"`
	Status   *string  `json:"status"`
}

// Validate checks the provided fields and returns the parsed deadline
// when one was supplied.
func (r *UpdateJobStatusRequest) Validate() (*time.Time, error) {
	if r.Status != nil && !domain.ValidJobStatus(*r.Status) {
		return nil, domain.NewValidationError("status", "must be one of pending, accepted, completed, saved")
	}

	if r.Payment != nil && *r.Payment < 0 {
		return nil, domain.NewValidationError("payment", "must be non-negative")
	}

	if r.Deadline == nil {
		return nil, nil
	}

	deadline, err := ParseDeadline(*r.Deadline)
	if err != nil {
		return nil, domain.NewValidationError("deadline", "must be a date (2006-01-02) or RFC3339 timestamp")
	}

	return &deadline, nil
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateJobStatusRequest) Empty() bool {
	return r.Category == nil && r.Title == nil && r.JobType == nil &&
		r.Payment == nil && r.Deadline == nil && r.Status == nil
}

// ParseDeadline accepts a bare date or an RFC3339 timestamp.
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(deadlineLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// toValidationError converts validator/v10 errors into the domain's
// field-level representation.
func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.NewValidationError("payload", err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "gte":
			fields[fe.Field()] = "must be at least " + fe.Param()
		default:
			fields[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
	}
	return &domain.ValidationError{Fields: fields}
}
