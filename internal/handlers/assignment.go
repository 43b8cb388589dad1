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

type AssignmentRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CourseID    uint      `json:"course_id" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignmentResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CourseID    uint       `json:"course_id"`
	CompletedAt *time.Time `json:"completed_at"`
	IsOverdue   bool       `json:"is_overdue"`
}

func toAssignmentResponse(a models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		DueDate:     a.DueDate,
		Status:      a.Status,
		Priority:    a.Priority,
		CourseID:    a.CourseID,
		CompletedAt: a.CompletedAt,
		IsOverdue:   a.IsOverdue(time.Now().UTC()),
	}
}

func toAssignmentResponses(assignments []models.Assignment) []AssignmentResponse {
	response := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		response = append(response, toAssignmentResponse(a))
	}
	return response
}

type AssignmentHandler struct {
	assignments *services.AssignmentService
}

func NewAssignmentHandler(assignments *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignments, err := h.assignments.ListAssignments(userID)

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponses(assignments))
}

func (h *AssignmentHandler) ListByCourse(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	courseID, err := utils.GetCourseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, err := h.assignments.ListCourseAssignments(courseID, userID)

	if err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponses(assignments))
}

func (h *AssignmentHandler) ListUpcoming(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		days, _ = strconv.Atoi(raw)
	}

	assignments, err := h.assignments.UpcomingAssignments(userID, days, time.Now().UTC())

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponses(assignments))
}

func (h *AssignmentHandler) ListOverdue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignments, err := h.assignments.OverdueAssignments(userID, time.Now().UTC())

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponses(assignments))
}

func (h *AssignmentHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := utils.GetAssignmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.assignments.GetAssignment(assignmentID, userID)

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

func (h *AssignmentHandler) Create(ctx *gin.Context) {
	var req AssignmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status != "" && !types.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if req.Priority != "" && !types.ValidPriority(req.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignment, err := h.assignments.CreateAssignment(userID, services.AssignmentInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
		CourseID:    req.CourseID,
	})

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusCreated, toAssignmentResponse(*assignment))
}

func (h *AssignmentHandler) Update(ctx *gin.Context) {
	var req AssignmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidStatus(req.Status) || !types.ValidPriority(req.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status or priority"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := utils.GetAssignmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.assignments.UpdateAssignment(assignmentID, userID, services.AssignmentInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
		CourseID:    req.CourseID,
	})

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

func (h *AssignmentHandler) UpdateStatus(ctx *gin.Context) {
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

	assignmentID, err := utils.GetAssignmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.assignments.UpdateAssignmentStatus(assignmentID, userID, req.Status)

	if err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.JSON(http.StatusOK, toAssignmentResponse(*assignment))
}

func (h *AssignmentHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignmentID, err := utils.GetAssignmentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.assignments.DeleteAssignment(assignmentID, userID); err != nil {
		respondServiceError(ctx, err, "Assignment not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
