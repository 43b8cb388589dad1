package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel

	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// UI preferences (dashboard city, upcoming window override).
	Settings datatypes.JSON `gorm:"type:jsonb"`

	ResetToken       *string `gorm:"index"`
	ResetTokenExpiry *time.Time

	// Relationships
	Courses            []Course        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignments        []Assignment    `gorm:"foreignKey:UserID"`
	ProjectMemberships []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTasks      []ProjectTask   `gorm:"foreignKey:AssignedUserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
