package domain

// ID is used across domain entities.
type ID int64

// Role of an authenticated account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ApplicationStatus tracks a job application through the hiring flow.
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationReviewed  ApplicationStatus = "reviewed"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationReviewed, ApplicationInterview, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Job statuses. Only active jobs are listed publicly.
const (
	JobActive   = "active"
	JobInactive = "inactive"
	JobDraft    = "draft"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
}
