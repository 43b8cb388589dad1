package repositories

import (
	"errors"

	"github.com/studyhub-dev/studyhub/internal/models"
	"gorm.io/gorm"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ByUser(userID uint) ([]models.Course, error) {
	var courses []models.Course

	if err := r.db.Where("user_id = ?", userID).Order("name").Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ByID(id uint) (*models.Course, error) {
	var course models.Course

	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) ByIDWithAssignments(id uint) (*models.Course, error) {
	var course models.Course

	err := r.db.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("due_date")
	}).First(&course, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) CodeExists(userID uint, code string, excludeID uint) (bool, error) {
	query := r.db.Model(&models.Course{}).Where("user_id = ? AND code = ?", userID, code)

	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Select("Assignments").Delete(&models.Course{BaseModel: models.BaseModel{ID: id}}).Error
}
