package domain

// Job-status values a user's application can be in.
const (
	JobStatusPending   = "pending"
	JobStatusAccepted  = "accepted"
	JobStatusCompleted = "completed"
	JobStatusSaved     = "saved"
)

// ValidJobStatus reports whether s is one of the enumerated status values.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusPending, JobStatusAccepted, JobStatusCompleted, JobStatusSaved:
		return true
	}
	return false
}
