package models

type Course struct {
	BaseModel

	Name        string `gorm:"not null"`
	Code        string `gorm:"not null;uniqueIndex:idx_user_course_code"`
	Semester    string `gorm:"not null"`
	Description string
	Color       string `gorm:"not null;default:'#007bff'"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_user_course_code;index"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:CourseID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
