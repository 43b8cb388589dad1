package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/studyhub-dev/studyhub/internal/logging"
	"github.com/studyhub-dev/studyhub/internal/mailer"
	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/types"
)

type ProjectInput struct {
	Name        string
	Description string
	DueDate     *time.Time
}

type TaskInput struct {
	Name           string
	Description    string
	DueDate        *time.Time
	AssignedUserID *uint
}

// ProjectService authorizes by membership: any current member may read and
// mutate the project, its members and its tasks.
type ProjectService struct {
	projects repositories.ProjectRepository
	users    repositories.UserRepository
	mail     mailer.Sender
}

func NewProjectService(projects repositories.ProjectRepository, users repositories.UserRepository, mail mailer.Sender) *ProjectService {
	return &ProjectService{projects: projects, users: users, mail: mail}
}

func (s *ProjectService) ListProjects(userID uint) ([]models.GroupProject, error) {
	return s.projects.ByMember(userID)
}

func (s *ProjectService) GetProject(projectID, userID uint) (*models.GroupProject, error) {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !isMember {
		return nil, ErrNotFound
	}

	project, err := s.projects.ByIDWithDetails(projectID)

	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, ErrNotFound
	}

	return project, nil
}

// CreateProject enrolls the creator as the Owner member in the same
// transaction, so the project never exists without an owner.
func (s *ProjectService) CreateProject(userID uint, in ProjectInput) (*models.GroupProject, error) {
	project := models.GroupProject{
		Name:        in.Name,
		Description: in.Description,
		DueDate:     in.DueDate,
	}

	if err := s.projects.CreateWithOwner(&project, userID); err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *ProjectService) UpdateProject(projectID, userID uint, in ProjectInput) (*models.GroupProject, error) {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !isMember {
		return nil, ErrNotFound
	}

	project, err := s.projects.ByID(projectID)

	if err != nil {
		return nil, err
	}

	if project == nil {
		return nil, ErrNotFound
	}

	project.Name = in.Name
	project.Description = in.Description
	project.DueDate = in.DueDate
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) DeleteProject(projectID, userID uint) error {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return err
	}

	if !isMember {
		return ErrNotFound
	}

	return s.projects.Delete(projectID)
}

func (s *ProjectService) AddMember(projectID, userID uint, email, role string) (*models.ProjectMember, error) {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !isMember {
		return nil, ErrNotFound
	}

	invitee, err := s.users.ByEmail(email)

	if err != nil {
		return nil, err
	}

	if invitee == nil {
		return nil, conflictf("No user found with email '%s'.", email)
	}

	alreadyMember, err := s.projects.IsMember(projectID, invitee.ID)

	if err != nil {
		return nil, err
	}

	if alreadyMember {
		return nil, conflictf("This user is already a member of the project.")
	}

	if role == "" {
		role = types.RoleMember
	}

	member := models.ProjectMember{
		GroupProjectID: projectID,
		UserID:         invitee.ID,
		Role:           role,
		JoinedAt:       time.Now().UTC(),
	}

	if err := s.projects.AddMember(&member); err != nil {
		return nil, err
	}

	s.notifyMemberAdded(projectID, invitee)

	member.User = *invitee
	return &member, nil
}

// notifyMemberAdded is best effort; a delivery failure never rolls back
// the membership.
func (s *ProjectService) notifyMemberAdded(projectID uint, invitee *models.User) {
	if s.mail == nil {
		return
	}

	project, err := s.projects.ByID(projectID)

	if err != nil || project == nil {
		return
	}

	subject := fmt.Sprintf("You've been added to %s", project.Name)
	body := fmt.Sprintf("Hi %s,\n\nYou are now a member of the group project %q.\nLog in to see its tasks and members.\n",
		invitee.FirstName, project.Name)

	if err := s.mail.Send(invitee.Email, subject, body); err != nil {
		logging.Logger.WithError(err).Warn("failed to send member invitation email")
	}
}

func (s *ProjectService) RemoveMember(projectID, userID, memberUserID uint) error {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return err
	}

	if !isMember {
		return ErrNotFound
	}

	err = s.projects.RemoveMember(projectID, memberUserID)

	if errors.Is(err, repositories.ErrMemberNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, repositories.ErrLastOwner) {
		return conflictf("Cannot remove the last owner of the project.")
	}

	return err
}

func (s *ProjectService) AddTask(projectID, userID uint, in TaskInput) (*models.ProjectTask, error) {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !isMember {
		return nil, ErrNotFound
	}

	task := models.ProjectTask{
		Name:           in.Name,
		Description:    in.Description,
		Status:         types.StatusNotStarted,
		DueDate:        in.DueDate,
		GroupProjectID: projectID,
		AssignedUserID: in.AssignedUserID,
	}

	if err := s.projects.CreateTask(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *ProjectService) UpdateTaskStatus(projectID, taskID, userID uint, status string) (*models.ProjectTask, error) {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return nil, err
	}

	if !isMember {
		return nil, ErrNotFound
	}

	task, err := s.projects.TaskByID(projectID, taskID)

	if err != nil {
		return nil, err
	}

	if task == nil {
		return nil, ErrNotFound
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	// Unlike assignments, a task's completion stamp follows the status:
	// leaving completed clears it.
	if status == types.StatusCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.projects.UpdateTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *ProjectService) DeleteTask(projectID, taskID, userID uint) error {
	isMember, err := s.projects.IsMember(projectID, userID)

	if err != nil {
		return err
	}

	if !isMember {
		return ErrNotFound
	}

	task, err := s.projects.TaskByID(projectID, taskID)

	if err != nil {
		return err
	}

	if task == nil {
		return ErrNotFound
	}

	return s.projects.DeleteTask(projectID, taskID)
}
