package services

import (
	"math"
	"time"

	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/types"
)

type DashboardSummary struct {
	TotalCourses         int     `json:"total_courses"`
	TotalAssignments     int     `json:"total_assignments"`
	CompletedAssignments int     `json:"completed_assignments"`
	UpcomingAssignments  int     `json:"upcoming_assignments"`
	OverdueAssignments   int     `json:"overdue_assignments"`
	TotalGroupProjects   int     `json:"total_group_projects"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// DashboardService is read-side aggregation only.
type DashboardService struct {
	courses     repositories.CourseRepository
	assignments repositories.AssignmentRepository
	projects    repositories.ProjectRepository
}

func NewDashboardService(
	courses repositories.CourseRepository,
	assignments repositories.AssignmentRepository,
	projects repositories.ProjectRepository,
) *DashboardService {
	return &DashboardService{
		courses:     courses,
		assignments: assignments,
		projects:    projects,
	}
}

func (s *DashboardService) Summary(userID uint, upcomingDays int, now time.Time) (*DashboardSummary, error) {
	if upcomingDays <= 0 {
		upcomingDays = types.DefaultUpcomingDays
	}

	courses, err := s.courses.ByUser(userID)

	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ByUser(userID)

	if err != nil {
		return nil, err
	}

	projects, err := s.projects.ByMember(userID)

	if err != nil {
		return nil, err
	}

	upcoming, err := s.assignments.Upcoming(userID, now, now.AddDate(0, 0, upcomingDays))

	if err != nil {
		return nil, err
	}

	overdue, err := s.assignments.Overdue(userID, now)

	if err != nil {
		return nil, err
	}

	total := len(assignments)
	completed := 0

	for _, a := range assignments {
		if a.Status == types.StatusCompleted {
			completed++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(completed)/float64(total)*1000) / 10
	}

	return &DashboardSummary{
		TotalCourses:         len(courses),
		TotalAssignments:     total,
		CompletedAssignments: completed,
		UpcomingAssignments:  len(upcoming),
		OverdueAssignments:   len(overdue),
		TotalGroupProjects:   len(projects),
		CompletionPercentage: percentage,
	}, nil
}
