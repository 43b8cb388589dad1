package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/utils"
)

type CourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Semester    string `json:"semester" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type CourseResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Code        string               `json:"code"`
	Semester    string               `json:"semester"`
	Description string               `json:"description"`
	Color       string               `json:"color"`
	CreatedAt   time.Time            `json:"created_at"`
	Assignments []AssignmentResponse `json:"assignments,omitempty"`
}

func toCourseResponse(course models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Code:        course.Code,
		Semester:    course.Semester,
		Description: course.Description,
		Color:       course.Color,
		CreatedAt:   course.CreatedAt,
	}

	for _, a := range course.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(a))
	}

	return resp
}

type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

func (h *CourseHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	courses, err := h.courses.ListCourses(userID)

	if err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	response := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		response = append(response, toCourseResponse(course))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *CourseHandler) Get(ctx *gin.Context) {
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

	course, err := h.courses.GetCourseWithAssignments(courseID, userID)

	if err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	ctx.JSON(http.StatusOK, toCourseResponse(*course))
}

func (h *CourseHandler) Create(ctx *gin.Context) {
	var req CourseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	course, err := h.courses.CreateCourse(userID, services.CourseInput{
		Name:        req.Name,
		Code:        req.Code,
		Semester:    req.Semester,
		Description: req.Description,
		Color:       req.Color,
	})

	if err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	ctx.JSON(http.StatusCreated, toCourseResponse(*course))
}

func (h *CourseHandler) Update(ctx *gin.Context) {
	var req CourseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

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

	course, err := h.courses.UpdateCourse(courseID, userID, services.CourseInput{
		Name:        req.Name,
		Code:        req.Code,
		Semester:    req.Semester,
		Description: req.Description,
		Color:       req.Color,
	})

	if err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	ctx.JSON(http.StatusOK, toCourseResponse(*course))
}

func (h *CourseHandler) Delete(ctx *gin.Context) {
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

	if err := h.courses.DeleteCourse(courseID, userID); err != nil {
		respondServiceError(ctx, err, "Course not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
