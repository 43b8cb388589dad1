package models

import "time"

type ProjectMember struct {
	BaseModel

	Role           string `gorm:"not null;default:'Member'"`
	GroupProjectID uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	JoinedAt       time.Time

	// Relationships
	GroupProject GroupProject `gorm:"foreignKey:GroupProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
