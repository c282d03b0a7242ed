package users

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can take on the platform
const (
	RoleJobSeeker    = "job_seeker"
	RoleTalentSeeker = "talent_seeker"
)

// User is the durable record for a platform user, created from the
// identity provider webhook and completed by the onboarding wizard
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"uniqueIndex;size:255;not null" json:"external_id"`
	Email      string `gorm:"size:255" json:"email"`
	FirstName  string `gorm:"size:255" json:"first_name"`
	LastName   string `gorm:"size:255" json:"last_name"`
	Role       string `gorm:"size:32" json:"role"`
	AvatarURL  string `gorm:"size:1024" json:"avatar_url"`

	// Profile is the finalized wizard output as a JSON document
	Profile string `gorm:"type:jsonb" json:"profile,omitempty"`

	OnboardedAt *time.Time     `json:"onboarded_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name for user records
func (User) TableName() string {
	return "users"
}

// Onboarded reports whether the user has completed the wizard
func (u *User) Onboarded() bool {
	return u.OnboardedAt != nil
}
