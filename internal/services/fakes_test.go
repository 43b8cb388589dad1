package services

import (
	"sort"
	"time"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/types"
)

// In-memory repositories backing the service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) ByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ByResetToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeCourseRepo struct {
	courses map[uint]*models.Course
	nextID  uint
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[uint]*models.Course), nextID: 1}
}

func (r *fakeCourseRepo) ByUser(userID uint) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCourseRepo) ByID(id uint) (*models.Course, error) {
	if c, ok := r.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeCourseRepo) ByIDWithAssignments(id uint) (*models.Course, error) {
	return r.ByID(id)
}

func (r *fakeCourseRepo) CodeExists(userID uint, code string, excludeID uint) (bool, error) {
	for _, c := range r.courses {
		if c.UserID == userID && c.Code == code && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Create(course *models.Course) error {
	course.ID = r.nextID
	r.nextID++
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) Update(course *models.Course) error {
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) Delete(id uint) error {
	delete(r.courses, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[uint]*models.Assignment
	nextID      uint
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[uint]*models.Assignment), nextID: 1}
}

func (r *fakeAssignmentRepo) ByUser(userID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *fakeAssignmentRepo) ByCourse(courseID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ByID(id uint) (*models.Assignment, error) {
	if a, ok := r.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ByIDWithCourse(id uint) (*models.Assignment, error) {
	return r.ByID(id)
}

func (r *fakeAssignmentRepo) Upcoming(userID uint, from, to time.Time) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.UserID != userID || a.Status == types.StatusCompleted {
			continue
		}
		if !a.DueDate.Before(from) && !a.DueDate.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Overdue(userID uint, now time.Time) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.UserID != userID || a.Status == types.StatusCompleted {
			continue
		}
		if a.DueDate.Before(now) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) DueSoonAcrossUsers(from, to time.Time) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range r.assignments {
		if a.Status == types.StatusCompleted {
			continue
		}
		if !a.DueDate.Before(from) && !a.DueDate.After(to) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeAssignmentRepo) Create(assignment *models.Assignment) error {
	assignment.ID = r.nextID
	r.nextID++
	copied := *assignment
	r.assignments[assignment.ID] = &copied
	return nil
}

func (r *fakeAssignmentRepo) Update(assignment *models.Assignment) error {
	copied := *assignment
	r.assignments[assignment.ID] = &copied
	return nil
}

func (r *fakeAssignmentRepo) Delete(id uint) error {
	delete(r.assignments, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[uint]*models.GroupProject
	members  []models.ProjectMember
	tasks    map[uint]*models.ProjectTask

	nextProjectID uint
	nextMemberID  uint
	nextTaskID    uint
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:      make(map[uint]*models.GroupProject),
		tasks:         make(map[uint]*models.ProjectTask),
		nextProjectID: 1,
		nextMemberID:  1,
		nextTaskID:    1,
	}
}

func (r *fakeProjectRepo) ByMember(userID uint) ([]models.GroupProject, error) {
	var out []models.GroupProject
	for _, m := range r.members {
		if m.UserID == userID {
			if p, ok := r.projects[m.GroupProjectID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ByID(id uint) (*models.GroupProject, error) {
	if p, ok := r.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) ByIDWithDetails(id uint) (*models.GroupProject, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	copied.Members = r.projectMembers(id)
	for _, t := range r.tasks {
		if t.GroupProjectID == id {
			copied.Tasks = append(copied.Tasks, *t)
		}
	}
	return &copied, nil
}

func (r *fakeProjectRepo) projectMembers(projectID uint) []models.ProjectMember {
	var out []models.ProjectMember
	for _, m := range r.members {
		if m.GroupProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

func (r *fakeProjectRepo) IsMember(projectID, userID uint) (bool, error) {
	for _, m := range r.members {
		if m.GroupProjectID == projectID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) CreateWithOwner(project *models.GroupProject, ownerID uint) error {
	project.ID = r.nextProjectID
	r.nextProjectID++
	copied := *project
	r.projects[project.ID] = &copied

	owner := models.ProjectMember{
		BaseModel:      models.BaseModel{ID: r.nextMemberID},
		GroupProjectID: project.ID,
		UserID:         ownerID,
		Role:           types.RoleOwner,
		JoinedAt:       time.Now().UTC(),
	}
	r.nextMemberID++
	r.members = append(r.members, owner)
	project.Members = append(project.Members, owner)
	return nil
}

func (r *fakeProjectRepo) Update(project *models.GroupProject) error {
	copied := *project
	copied.Members = nil
	copied.Tasks = nil
	r.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) Delete(id uint) error {
	delete(r.projects, id)
	var remaining []models.ProjectMember
	for _, m := range r.members {
		if m.GroupProjectID != id {
			remaining = append(remaining, m)
		}
	}
	r.members = remaining
	for taskID, t := range r.tasks {
		if t.GroupProjectID == id {
			delete(r.tasks, taskID)
		}
	}
	return nil
}

func (r *fakeProjectRepo) AddMember(member *models.ProjectMember) error {
	member.ID = r.nextMemberID
	r.nextMemberID++
	r.members = append(r.members, *member)
	return nil
}

func (r *fakeProjectRepo) RemoveMember(projectID, memberUserID uint) error {
	idx := -1
	for i, m := range r.members {
		if m.GroupProjectID == projectID && m.UserID == memberUserID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repositories.ErrMemberNotFound
	}

	if r.members[idx].Role == types.RoleOwner {
		owners := 0
		for _, m := range r.members {
			if m.GroupProjectID == projectID && m.Role == types.RoleOwner {
				owners++
			}
		}
		if owners <= 1 {
			return repositories.ErrLastOwner
		}
	}

	r.members = append(r.members[:idx], r.members[idx+1:]...)
	return nil
}

func (r *fakeProjectRepo) TaskByID(projectID, taskID uint) (*models.ProjectTask, error) {
	if t, ok := r.tasks[taskID]; ok && t.GroupProjectID == projectID {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) CreateTask(task *models.ProjectTask) error {
	task.ID = r.nextTaskID
	r.nextTaskID++
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) UpdateTask(task *models.ProjectTask) error {
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) DeleteTask(projectID, taskID uint) error {
	if t, ok := r.tasks[taskID]; ok && t.GroupProjectID == projectID {
		delete(r.tasks, taskID)
	}
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
