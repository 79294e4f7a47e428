package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is awaiting review
	ApplicationStatusPending = "pending"
	// ApplicationStatusAccepted indicates that the recruiter accepted the applicant
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the recruiter rejected the applicant
	ApplicationStatusRejected = "rejected"
)

// Application links one Job and one applicant User. The composite unique
// index backs the one-application-per-job-per-user rule under concurrent
// submissions.
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	JobID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant" json:"jobId"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID" json:"job"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant" json:"applicantId"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"applicant"`

	Status string `gorm:"type:text;not null" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}

// ValidStatus reports whether s names a known application status,
// ignoring case. The stored value keeps the caller's casing.
func ValidStatus(s string) bool {
	switch strings.ToLower(s) {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
