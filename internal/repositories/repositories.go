package repositories

import (
	"errors"
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
)

// Lookups return (nil, nil) when no row matches, so callers cannot tell a
// missing row from one they are not allowed to see.
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrLastOwner      = errors.New("cannot remove the last owner of the project")
)

type UserRepository interface {
	ByID(id uint) (*models.User, error)
	ByEmail(email string) (*models.User, error)
	ByResetToken(token string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}

type CourseRepository interface {
	ByUser(userID uint) ([]models.Course, error)
	ByID(id uint) (*models.Course, error)
	ByIDWithAssignments(id uint) (*models.Course, error)
	// CodeExists reports whether the user already has a course with the
	// given code, ignoring excludeID when non-zero.
	CodeExists(userID uint, code string, excludeID uint) (bool, error)
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uint) error
}

type AssignmentRepository interface {
	ByUser(userID uint) ([]models.Assignment, error)
	ByCourse(courseID uint) ([]models.Assignment, error)
	ByID(id uint) (*models.Assignment, error)
	ByIDWithCourse(id uint) (*models.Assignment, error)
	// Upcoming returns non-completed assignments due within [from, to].
	Upcoming(userID uint, from, to time.Time) ([]models.Assignment, error)
	// Overdue returns non-completed assignments due before now.
	Overdue(userID uint, now time.Time) ([]models.Assignment, error)
	// DueSoonAcrossUsers feeds the reminder scheduler.
	DueSoonAcrossUsers(from, to time.Time) ([]models.Assignment, error)
	Create(assignment *models.Assignment) error
	Update(assignment *models.Assignment) error
	Delete(id uint) error
}

type ProjectRepository interface {
	ByMember(userID uint) ([]models.GroupProject, error)
	ByID(id uint) (*models.GroupProject, error)
	ByIDWithDetails(id uint) (*models.GroupProject, error)
	IsMember(projectID, userID uint) (bool, error)
	// CreateWithOwner inserts the project and its creator's Owner
	// membership in a single transaction.
	CreateWithOwner(project *models.GroupProject, ownerID uint) error
	Update(project *models.GroupProject) error
	Delete(id uint) error

	AddMember(member *models.ProjectMember) error
	// RemoveMember deletes the membership atomically, failing with
	// ErrLastOwner when it would leave the project without an Owner.
	RemoveMember(projectID, memberUserID uint) error

	TaskByID(projectID, taskID uint) (*models.ProjectTask, error)
	CreateTask(task *models.ProjectTask) error
	UpdateTask(task *models.ProjectTask) error
	DeleteTask(projectID, taskID uint) error
}
