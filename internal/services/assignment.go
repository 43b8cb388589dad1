package services

import (
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/types"
)

type AssignmentInput struct {
	Name        string
	Description string
	DueDate     time.Time
	Status      string
	Priority    string
	CourseID    uint
}

type AssignmentService struct {
	assignments repositories.AssignmentRepository
	courses     repositories.CourseRepository
}

func NewAssignmentService(assignments repositories.AssignmentRepository, courses repositories.CourseRepository) *AssignmentService {
	return &AssignmentService{assignments: assignments, courses: courses}
}

func (s *AssignmentService) ListAssignments(userID uint) ([]models.Assignment, error) {
	return s.assignments.ByUser(userID)
}

// ListCourseAssignments returns an empty list when the course does not
// exist or belongs to someone else.
func (s *AssignmentService) ListCourseAssignments(courseID, userID uint) ([]models.Assignment, error) {
	course, err := s.courses.ByID(courseID)

	if err != nil {
		return nil, err
	}

	if course == nil || course.UserID != userID {
		return []models.Assignment{}, nil
	}

	return s.assignments.ByCourse(courseID)
}

func (s *AssignmentService) UpcomingAssignments(userID uint, days int, now time.Time) ([]models.Assignment, error) {
	if days <= 0 {
		days = types.DefaultUpcomingDays
	}

	return s.assignments.Upcoming(userID, now, now.AddDate(0, 0, days))
}

func (s *AssignmentService) OverdueAssignments(userID uint, now time.Time) ([]models.Assignment, error) {
	return s.assignments.Overdue(userID, now)
}

func (s *AssignmentService) GetAssignment(assignmentID, userID uint) (*models.Assignment, error) {
	assignment, err := s.assignments.ByIDWithCourse(assignmentID)

	if err != nil {
		return nil, err
	}

	if assignment == nil || assignment.UserID != userID {
		return nil, ErrNotFound
	}

	return assignment, nil
}

func (s *AssignmentService) CreateAssignment(userID uint, in AssignmentInput) (*models.Assignment, error) {
	course, err := s.courses.ByID(in.CourseID)

	if err != nil {
		return nil, err
	}

	if course == nil || course.UserID != userID {
		return nil, conflictf("Course not found or you don't have permission to add assignments to it.")
	}

	status := in.Status
	if status == "" {
		status = types.StatusNotStarted
	}

	priority := in.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}

	assignment := models.Assignment{
		Name:        in.Name,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		Priority:    priority,
		CourseID:    in.CourseID,
		UserID:      userID,
	}

	if status == types.StatusCompleted {
		now := time.Now().UTC()
		assignment.CompletedAt = &now
	}

	if err := s.assignments.Create(&assignment); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (s *AssignmentService) UpdateAssignment(assignmentID, userID uint, in AssignmentInput) (*models.Assignment, error) {
	existing, err := s.assignments.ByID(assignmentID)

	if err != nil {
		return nil, err
	}

	if existing == nil || existing.UserID != userID {
		return nil, ErrNotFound
	}

	// Re-pointing the assignment at another course requires owning the
	// new course as well.
	if existing.CourseID != in.CourseID {
		course, err := s.courses.ByID(in.CourseID)

		if err != nil {
			return nil, err
		}

		if course == nil || course.UserID != userID {
			return nil, conflictf("Course not found or you don't have permission to use it.")
		}
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.DueDate = in.DueDate
	existing.Status = in.Status
	existing.Priority = in.Priority
	existing.CourseID = in.CourseID
	existing.UpdatedAt = time.Now().UTC()

	// The completion stamp is set once and survives a later status
	// change back to not started or in progress.
	if in.Status == types.StatusCompleted && existing.CompletedAt == nil {
		now := time.Now().UTC()
		existing.CompletedAt = &now
	}

	if err := s.assignments.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *AssignmentService) UpdateAssignmentStatus(assignmentID, userID uint, status string) (*models.Assignment, error) {
	assignment, err := s.assignments.ByID(assignmentID)

	if err != nil {
		return nil, err
	}

	if assignment == nil || assignment.UserID != userID {
		return nil, ErrNotFound
	}

	assignment.Status = status
	assignment.UpdatedAt = time.Now().UTC()

	if status == types.StatusCompleted && assignment.CompletedAt == nil {
		now := time.Now().UTC()
		assignment.CompletedAt = &now
	}

	if err := s.assignments.Update(assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *AssignmentService) DeleteAssignment(assignmentID, userID uint) error {
	assignment, err := s.assignments.ByID(assignmentID)

	if err != nil {
		return err
	}

	if assignment == nil || assignment.UserID != userID {
		return ErrNotFound
	}

	return s.assignments.Delete(assignmentID)
}
