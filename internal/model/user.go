package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// RoleStudent is the role of a job seeker account
	RoleStudent = "student"
	// RoleRecruiter is the role of an account that owns companies and posts jobs
	RoleRecruiter = "recruiter"
)

// Profile holds the job-seeker facing part of a user record.
// Skills is stored as a Postgres text array.
type Profile struct {
	Bio                string         `gorm:"type:text" json:"bio"`
	Skills             pq.StringArray `gorm:"type:text[]" json:"skills"`
	Resume             string         `gorm:"type:text" json:"resume"`
	ResumeOriginalName string         `gorm:"type:text" json:"resumeOriginalName"`
	ProfilePhoto       string         `gorm:"type:text" json:"profilePhoto"`
}

// EditableUserInfo is the subset of User a caller may change through
// the profile update endpoint. Empty fields are left untouched.
type EditableUserInfo struct {
	FullName    string `gorm:"type:text;not null" json:"fullName" form:"fullName"`
	Email       string `gorm:"type:text;uniqueIndex;not null" json:"email" form:"email"`
	PhoneNumber string `gorm:"type:text;uniqueIndex;not null" json:"phoneNumber" form:"phoneNumber"`
}

// User is the gorm model for an account, either student or recruiter.
// The password column holds a bcrypt hash and never serializes.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	EditableUserInfo `gorm:"embedded"`

	Password string `gorm:"type:text;not null" json:"-"`
	Role     string `gorm:"type:text;not null" json:"role"`

	Profile Profile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}
