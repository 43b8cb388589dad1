package models

import (
	"time"

	"github.com/studyhub-dev/studyhub/internal/types"
)

type Assignment struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	DueDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"not null;default:'not_started'"`
	Priority    string    `gorm:"not null;default:'medium'"`
	CourseID    uint      `gorm:"not null;index"`
	UserID      uint      `gorm:"not null;index"`

	CompletedAt *time.Time

	// Relationships. Deleting a course removes its assignments; deleting a
	// user does not cascade here (courses cascade first).
	Course Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (a Assignment) IsOverdue(now time.Time) bool {
	return a.Status != types.StatusCompleted && a.DueDate.Before(now)
}

func (a Assignment) DaysUntilDue(now time.Time) int {
	due := a.DueDate.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	return int(due.Sub(today).Hours() / 24)
}
