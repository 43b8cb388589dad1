package models

import (
	"time"

	"github.com/studyhub-dev/studyhub/internal/types"
)

type ProjectTask struct {
	BaseModel

	Name           string `gorm:"not null"`
	Description    string
	Status         string `gorm:"not null;default:'not_started'"`
	DueDate        *time.Time
	GroupProjectID uint  `gorm:"not null;index"`
	AssignedUserID *uint `gorm:"index"`

	CompletedAt *time.Time

	// Relationships. Removing the assigned user clears the assignment
	// instead of deleting the task.
	GroupProject GroupProject `gorm:"foreignKey:GroupProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AssignedUser *User        `gorm:"foreignKey:AssignedUserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (t ProjectTask) IsOverdue(now time.Time) bool {
	return t.Status != types.StatusCompleted && t.DueDate != nil && t.DueDate.Before(now)
}
