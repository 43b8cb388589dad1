package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/types"
)

type projectFixture struct {
	svc      *ProjectService
	projects *fakeProjectRepo
	users    *fakeUserRepo
	mail     *fakeMailer
	alice    *models.User
	bob      *models.User
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()

	projects := newFakeProjectRepo()
	users := newFakeUserRepo()
	mail := &fakeMailer{}

	alice := &models.User{FirstName: "Alice", LastName: "Nguyen", Email: "alice@example.com"}
	require.NoError(t, users.Create(alice))
	bob := &models.User{FirstName: "Bob", LastName: "Okafor", Email: "bob@example.com"}
	require.NoError(t, users.Create(bob))

	return &projectFixture{
		svc:      NewProjectService(projects, users, mail),
		projects: projects,
		users:    users,
		mail:     mail,
		alice:    alice,
		bob:      bob,
	}
}

func TestCreateProject_CreatorBecomesOwner(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)
	require.Len(t, project.Members, 1)
	assert.Equal(t, f.alice.ID, project.Members[0].UserID)
	assert.Equal(t, types.RoleOwner, project.Members[0].Role)

	// The creator can read it right away.
	got, err := f.svc.GetProject(project.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Compiler project", got.Name)

	// A non-member gets the not-found outcome.
	_, err = f.svc.GetProject(project.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMember(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)

	member, err := f.svc.AddMember(project.ID, f.alice.ID, "bob@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, types.RoleMember, member.Role)
	assert.Equal(t, f.bob.ID, member.UserID)

	// Invitation email is sent best effort.
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "bob@example.com", f.mail.sent[0].To)
	assert.Contains(t, f.mail.sent[0].Subject, "Compiler project")

	// Duplicate membership conflicts.
	_, err = f.svc.AddMember(project.ID, f.alice.ID, "bob@example.com", "")
	assert.True(t, IsConflict(err))

	// Unknown email conflicts with a caller-facing message.
	_, err = f.svc.AddMember(project.ID, f.alice.ID, "nobody@example.com", "")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "nobody@example.com")

	// A non-member cannot invite anyone.
	carol := &models.User{FirstName: "Carol", LastName: "Iyer", Email: "carol@example.com"}
	require.NoError(t, f.users.Create(carol))
	_, err = f.svc.AddMember(project.ID, carol.ID, "carol@example.com", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMember_MailFailureDoesNotRollBack(t *testing.T) {
	f := newProjectFixture(t)
	f.mail.err = errors.New("smtp connection refused")

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)

	member, err := f.svc.AddMember(project.ID, f.alice.ID, "bob@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, member.UserID)

	// The invitation email is best effort; the membership stays.
	got, err := f.svc.GetProject(project.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
}

func TestRemoveMember_LastOwnerInvariant(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)
	_, err = f.svc.AddMember(project.ID, f.alice.ID, "bob@example.com", "")
	require.NoError(t, err)

	// Alice is the only Owner; removing her must fail and change nothing.
	err = f.svc.RemoveMember(project.ID, f.bob.ID, f.alice.ID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	got, err := f.svc.GetProject(project.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)

	// With a second Owner, the first one can leave.
	carol := &models.User{FirstName: "Carol", LastName: "Iyer", Email: "carol@example.com"}
	require.NoError(t, f.users.Create(carol))
	_, err = f.svc.AddMember(project.ID, f.alice.ID, "carol@example.com", types.RoleOwner)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveMember(project.ID, carol.ID, f.alice.ID))

	_, err = f.svc.GetProject(project.ID, f.alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMember_UnknownMember(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)

	err = f.svc.RemoveMember(project.ID, f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTasks_MembershipScopedAndCompletionNotSticky(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)

	due := time.Now().AddDate(0, 0, 5)
	task, err := f.svc.AddTask(project.ID, f.alice.ID, TaskInput{Name: "Write lexer", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, types.StatusNotStarted, task.Status)

	// Non-members cannot touch tasks.
	_, err = f.svc.AddTask(project.ID, f.bob.ID, TaskInput{Name: "Sneaky"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.UpdateTaskStatus(project.ID, task.ID, f.bob.ID, types.StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)

	completed, err := f.svc.UpdateTaskStatus(project.ID, task.ID, f.alice.ID, types.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	// Task completion stamps clear on regression, unlike assignments.
	reopened, err := f.svc.UpdateTaskStatus(project.ID, task.ID, f.alice.ID, types.StatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	require.NoError(t, f.svc.DeleteTask(project.ID, task.ID, f.alice.ID))
	_, err = f.svc.UpdateTaskStatus(project.ID, task.ID, f.alice.ID, types.StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProject_AnyMemberMayEdit(t *testing.T) {
	f := newProjectFixture(t)

	project, err := f.svc.CreateProject(f.alice.ID, ProjectInput{Name: "Compiler project"})
	require.NoError(t, err)
	_, err = f.svc.AddMember(project.ID, f.alice.ID, "bob@example.com", "")
	require.NoError(t, err)

	// Bob is a plain member, not an Owner, but membership is the predicate.
	updated, err := f.svc.UpdateProject(project.ID, f.bob.ID, ProjectInput{Name: "Compiler project v2"})
	require.NoError(t, err)
	assert.Equal(t, "Compiler project v2", updated.Name)

	_, err = f.svc.UpdateProject(project.ID, 999, ProjectInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}
