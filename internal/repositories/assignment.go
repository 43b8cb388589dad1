package repositories

import (
	"errors"
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/types"
	"gorm.io/gorm"
)

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ByUser(userID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment

	if err := r.db.Where("user_id = ?", userID).Order("due_date").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ByCourse(courseID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment

	if err := r.db.Where("course_id = ?", courseID).Order("due_date").Find(&assignments).Error; err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) ByID(id uint) (*models.Assignment, error) {
	var assignment models.Assignment

	if err := r.db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &assignment, nil
}

func (r *assignmentRepository) ByIDWithCourse(id uint) (*models.Assignment, error) {
	var assignment models.Assignment

	if err := r.db.Preload("Course").First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &assignment, nil
}

func (r *assignmentRepository) Upcoming(userID uint, from, to time.Time) ([]models.Assignment, error) {
	var assignments []models.Assignment

	err := r.db.
		Where("user_id = ? AND status != ? AND due_date >= ? AND due_date <= ?",
			userID, types.StatusCompleted, from, to).
		Order("due_date").
		Find(&assignments).Error

	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Overdue(userID uint, now time.Time) ([]models.Assignment, error) {
	var assignments []models.Assignment

	err := r.db.
		Where("user_id = ? AND status != ? AND due_date < ?", userID, types.StatusCompleted, now).
		Order("due_date").
		Find(&assignments).Error

	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) DueSoonAcrossUsers(from, to time.Time) ([]models.Assignment, error) {
	var assignments []models.Assignment

	err := r.db.
		Preload("User").
		Preload("Course").
		Where("status != ? AND due_date >= ? AND due_date <= ?", types.StatusCompleted, from, to).
		Order("user_id, due_date").
		Find(&assignments).Error

	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

func (r *assignmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Assignment{}, id).Error
}
