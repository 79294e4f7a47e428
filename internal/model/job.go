package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job is the gorm model for a job posting. Applications is a read-time
// has-many aggregation, there is no stored list of application ids on
// the job row.
type Job struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	Title           string         `gorm:"type:text;not null" json:"title"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	Requirements    pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Salary          float64        `json:"salary"`
	Location        string         `gorm:"type:text;not null" json:"location"`
	JobType         string         `gorm:"type:text" json:"jobType"`
	Position        int            `json:"position"`
	ExperienceLevel int            `json:"experienceLevel"`

	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;references:ID" json:"-"`

	Applications []Application `gorm:"foreignKey:JobID" json:"applications"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}
