package models

import (
	"time"

	"github.com/studyhub-dev/studyhub/internal/types"
)

type GroupProject struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	DueDate     *time.Time

	// Relationships
	Members []ProjectMember `gorm:"foreignKey:GroupProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks   []ProjectTask   `gorm:"foreignKey:GroupProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (p GroupProject) TotalTasks() int {
	return len(p.Tasks)
}

func (p GroupProject) CompletedTasks() int {
	count := 0
	for _, t := range p.Tasks {
		if t.Status == types.StatusCompleted {
			count++
		}
	}
	return count
}

func (p GroupProject) CompletionPercentage() float64 {
	total := p.TotalTasks()
	if total == 0 {
		return 0
	}
	return float64(p.CompletedTasks()) / float64(total) * 100
}
