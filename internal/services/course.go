package services

import (
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/types"
)

// CourseInput carries caller-editable course fields. The owner is always
// stamped server-side.
type CourseInput struct {
	Name        string
	Code        string
	Semester    string
	Description string
	Color       string
}

type CourseService struct {
	courses repositories.CourseRepository
}

func NewCourseService(courses repositories.CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) ListCourses(userID uint) ([]models.Course, error) {
	return s.courses.ByUser(userID)
}

func (s *CourseService) GetCourse(courseID, userID uint) (*models.Course, error) {
	course, err := s.courses.ByID(courseID)

	if err != nil {
		return nil, err
	}

	if course == nil || course.UserID != userID {
		return nil, ErrNotFound
	}

	return course, nil
}

func (s *CourseService) GetCourseWithAssignments(courseID, userID uint) (*models.Course, error) {
	course, err := s.courses.ByIDWithAssignments(courseID)

	if err != nil {
		return nil, err
	}

	if course == nil || course.UserID != userID {
		return nil, ErrNotFound
	}

	return course, nil
}

func (s *CourseService) CreateCourse(userID uint, in CourseInput) (*models.Course, error) {
	exists, err := s.courses.CodeExists(userID, in.Code, 0)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, conflictf("A course with code '%s' already exists.", in.Code)
	}

	color := in.Color
	if color == "" {
		color = types.DefaultCourseColor
	}

	course := models.Course{
		Name:        in.Name,
		Code:        in.Code,
		Semester:    in.Semester,
		Description: in.Description,
		Color:       color,
		UserID:      userID,
	}

	if err := s.courses.Create(&course); err != nil {
		return nil, err
	}

	return &course, nil
}

func (s *CourseService) UpdateCourse(courseID, userID uint, in CourseInput) (*models.Course, error) {
	existing, err := s.courses.ByID(courseID)

	if err != nil {
		return nil, err
	}

	if existing == nil || existing.UserID != userID {
		return nil, ErrNotFound
	}

	exists, err := s.courses.CodeExists(userID, in.Code, courseID)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, conflictf("A course with code '%s' already exists.", in.Code)
	}

	existing.Name = in.Name
	existing.Code = in.Code
	existing.Semester = in.Semester
	existing.Description = in.Description
	if in.Color != "" {
		existing.Color = in.Color
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *CourseService) DeleteCourse(courseID, userID uint) error {
	course, err := s.courses.ByID(courseID)

	if err != nil {
		return err
	}

	if course == nil || course.UserID != userID {
		return ErrNotFound
	}

	return s.courses.Delete(courseID)
}
