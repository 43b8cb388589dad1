package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/types"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) ByMember(userID uint) ([]models.GroupProject, error) {
	var projects []models.GroupProject

	err := r.db.
		Joins("JOIN project_members ON project_members.group_project_id = group_projects.id").
		Where("project_members.user_id = ?", userID).
		Order("group_projects.name").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *projectRepository) ByID(id uint) (*models.GroupProject, error) {
	var project models.GroupProject

	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *projectRepository) ByIDWithDetails(id uint) (*models.GroupProject, error) {
	var project models.GroupProject

	err := r.db.
		Preload("Members.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date NULLS LAST")
		}).
		Preload("Tasks.AssignedUser").
		First(&project, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *projectRepository) IsMember(projectID, userID uint) (bool, error) {
	var count int64

	err := r.db.Model(&models.ProjectMember{}).
		Where("group_project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *projectRepository) CreateWithOwner(project *models.GroupProject, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		owner := models.ProjectMember{
			GroupProjectID: project.ID,
			UserID:         ownerID,
			Role:           types.RoleOwner,
			JoinedAt:       time.Now().UTC(),
		}

		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		project.Members = append(project.Members, owner)
		return nil
	})
}

func (r *projectRepository) Update(project *models.GroupProject) error {
	return r.db.Omit("Members", "Tasks").Save(project).Error
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Select("Members", "Tasks").
		Delete(&models.GroupProject{BaseModel: models.BaseModel{ID: id}}).Error
}

func (r *projectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

func (r *projectRepository) RemoveMember(projectID, memberUserID uint) error {
	// The owner-count check and the delete must be atomic. Read committed
	// is not enough: two concurrent owner removals would each count two
	// owners and both commit, so the transaction runs serializable and one
	// of them fails instead.
	return r.db.Transaction(func(tx *gorm.DB) error {
		var member models.ProjectMember

		err := tx.Where("group_project_id = ? AND user_id = ?", projectID, memberUserID).
			First(&member).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		if member.Role == types.RoleOwner {
			var owners int64

			err := tx.Model(&models.ProjectMember{}).
				Where("group_project_id = ? AND role = ?", projectID, types.RoleOwner).
				Count(&owners).Error

			if err != nil {
				return err
			}

			if owners <= 1 {
				return ErrLastOwner
			}
		}

		return tx.Delete(&member).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (r *projectRepository) TaskByID(projectID, taskID uint) (*models.ProjectTask, error) {
	var task models.ProjectTask

	err := r.db.Where("id = ? AND group_project_id = ?", taskID, projectID).First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (r *projectRepository) CreateTask(task *models.ProjectTask) error {
	return r.db.Create(task).Error
}

func (r *projectRepository) UpdateTask(task *models.ProjectTask) error {
	return r.db.Save(task).Error
}

func (r *projectRepository) DeleteTask(projectID, taskID uint) error {
	return r.db.Where("group_project_id = ?", projectID).
		Delete(&models.ProjectTask{}, taskID).Error
}
