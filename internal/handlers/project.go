package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/types"
	"github.com/studyhub-dev/studyhub/internal/utils"
)

type ProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type TaskRequest struct {
	Name           string     `json:"name" binding:"required"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *uint      `json:"assigned_user_id"`
}

type MemberResponse struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type TaskResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"due_date"`
	AssignedUserID *uint      `json:"assigned_user_id"`
	CompletedAt    *time.Time `json:"completed_at"`
}

type ProjectResponse struct {
	ID                   uint             `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	DueDate              *time.Time       `json:"due_date"`
	Members              []MemberResponse `json:"members,omitempty"`
	Tasks                []TaskResponse   `json:"tasks,omitempty"`
	TotalTasks           int              `json:"total_tasks"`
	CompletedTasks       int              `json:"completed_tasks"`
	CompletionPercentage float64          `json:"completion_percentage"`
}

func toTaskResponse(t models.ProjectTask) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Status:         t.Status,
		DueDate:        t.DueDate,
		AssignedUserID: t.AssignedUserID,
		CompletedAt:    t.CompletedAt,
	}
}

func toProjectResponse(p models.GroupProject) ProjectResponse {
	resp := ProjectResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		DueDate:              p.DueDate,
		TotalTasks:           p.TotalTasks(),
		CompletedTasks:       p.CompletedTasks(),
		CompletionPercentage: p.CompletionPercentage(),
	}

	for _, m := range p.Members {
		resp.Members = append(resp.Members, MemberResponse{
			ID:       m.ID,
			UserID:   m.UserID,
			Name:     m.User.FullName(),
			Email:    m.User.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	for _, t := range p.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}

	return resp
}

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := h.projects.ListProjects(userID)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, toProjectResponse(p))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.GetProject(projectID, userID)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(*project))
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var req ProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, err := h.projects.CreateProject(userID, services.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusCreated, toProjectResponse(*project))
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	var req ProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.UpdateProject(projectID, userID, services.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.JSON(http.StatusOK, toProjectResponse(*project))
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.DeleteProject(projectID, userID); err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) AddMember(ctx *gin.Context) {
	var req AddMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.projects.AddMember(projectID, userID, req.Email, req.Role)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.JSON(http.StatusCreated, MemberResponse{
		ID:       member.ID,
		UserID:   member.UserID,
		Name:     member.User.FullName(),
		Email:    member.User.Email,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	})
}

func (h *ProjectHandler) RemoveMember(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberUserID, err := utils.GetMemberUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.RemoveMember(projectID, userID, memberUserID); err != nil {
		respondServiceError(ctx, err, "Member not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.Status(http.StatusNoContent)
}

func (h *ProjectHandler) AddTask(ctx *gin.Context) {
	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.projects.AddTask(projectID, userID, services.TaskInput{
		Name:           req.Name,
		Description:    req.Description,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
	})

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.JSON(http.StatusCreated, toTaskResponse(*task))
}

func (h *ProjectHandler) UpdateTaskStatus(ctx *gin.Context) {
	var req UpdateStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.projects.UpdateTaskStatus(projectID, taskID, userID, req.Status)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.JSON(http.StatusOK, toTaskResponse(*task))
}

func (h *ProjectHandler) DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projects.DeleteTask(projectID, taskID, userID); err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	BroadcastProjectRefresh(strconv.FormatUint(uint64(projectID), 10))
	ctx.Status(http.StatusNoContent)
}
