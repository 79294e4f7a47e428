package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableCompanyInfo is the subset of Company a recruiter may change
// through the update endpoint. Empty fields are left untouched.
type EditableCompanyInfo struct {
	Name        string `gorm:"type:text;uniqueIndex;not null" json:"name" form:"name"`
	Description string `gorm:"type:text" json:"description" form:"description"`
	Website     string `gorm:"type:text" json:"website" form:"website"`
	Location    string `gorm:"type:text" json:"location" form:"location"`
}

// Company is the gorm model for a company owned by exactly one recruiter.
type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"-"`

	EditableCompanyInfo `gorm:"embedded"`

	Logo string `gorm:"type:text" json:"logo"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updatedAt"`
}
