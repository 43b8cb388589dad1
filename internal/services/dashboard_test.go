package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/types"
)

func TestDashboardSummary_EmptyUser(t *testing.T) {
	courses := newFakeCourseRepo()
	assignments := newFakeAssignmentRepo()
	projects := newFakeProjectRepo()
	svc := NewDashboardService(courses, assignments, projects)

	summary, err := svc.Summary(1, 0, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalAssignments)
	// No division error: zero assignments means zero percent.
	assert.Equal(t, 0.0, summary.CompletionPercentage)
}

func TestDashboardSummary_Counts(t *testing.T) {
	courses := newFakeCourseRepo()
	assignments := newFakeAssignmentRepo()
	projects := newFakeProjectRepo()

	courseSvc := NewCourseService(courses)
	assignmentSvc := NewAssignmentService(assignments, courses)
	svc := NewDashboardService(courses, assignments, projects)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	course, err := courseSvc.CreateCourse(1, CourseInput{Name: "Algorithms", Code: "CS101", Semester: "Fall 2026"})
	require.NoError(t, err)

	a1, err := assignmentSvc.CreateAssignment(1, AssignmentInput{
		Name: "done", DueDate: now.AddDate(0, 0, 2), CourseID: course.ID,
	})
	require.NoError(t, err)
	_, err = assignmentSvc.UpdateAssignmentStatus(a1.ID, 1, types.StatusCompleted)
	require.NoError(t, err)

	_, err = assignmentSvc.CreateAssignment(1, AssignmentInput{
		Name: "upcoming", DueDate: now.AddDate(0, 0, 3), CourseID: course.ID,
	})
	require.NoError(t, err)

	_, err = assignmentSvc.CreateAssignment(1, AssignmentInput{
		Name: "overdue", DueDate: now.AddDate(0, 0, -1), CourseID: course.ID,
	})
	require.NoError(t, err)

	projectSvcUsers := newFakeUserRepo()
	projectSvc := NewProjectService(projects, projectSvcUsers, nil)
	_, err = projectSvc.CreateProject(1, ProjectInput{Name: "Group study"})
	require.NoError(t, err)

	summary, err := svc.Summary(1, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalCourses)
	assert.Equal(t, 3, summary.TotalAssignments)
	assert.Equal(t, 1, summary.CompletedAssignments)
	assert.Equal(t, 1, summary.UpcomingAssignments)
	assert.Equal(t, 1, summary.OverdueAssignments)
	assert.Equal(t, 1, summary.TotalGroupProjects)
	// 1 of 3 completed, rounded to one decimal.
	assert.Equal(t, 33.3, summary.CompletionPercentage)
}
