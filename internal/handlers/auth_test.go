package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhub-dev/studyhub/internal/auth"
	"github.com/studyhub-dev/studyhub/internal/models"
)

type fakeUsers struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUsers) ByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUsers) ByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) ByResetToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUsers) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUsers) Update(user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type recordedMail struct {
	To      string
	Subject string
	Body    string
}

type recordingMailer struct {
	sent []recordedMail
	err  error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, recordedMail{To: to, Subject: subject, Body: body})
	return nil
}

func newAuthTestRouter() (*gin.Engine, *fakeUsers, *recordingMailer) {
	gin.SetMode(gin.TestMode)

	users := newFakeUsers()
	mail := &recordingMailer{}
	handler := NewAuthHandler(users, mail)

	r := gin.New()
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/forgot-password", handler.ForgotPassword)
	r.POST("/api/auth/reset-password", handler.ResetPassword)

	return r, users, mail
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, users *fakeUsers, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Alice",
		LastName:     "Nguyen",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, users.Create(user))
	return user
}

func TestPasswordResetFlow(t *testing.T) {
	r, users, mail := newAuthTestRouter()
	user := seedUser(t, users, "alice@example.com", "oldpassword1")

	w := postJSON(r, "/api/auth/forgot-password", `{"email":"alice@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	stored := users.users[user.ID]
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetTokenExpiry, time.Minute)

	// The token reaches the user by email, nowhere else.
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Body, *stored.ResetToken)

	token := *stored.ResetToken
	body := fmt.Sprintf(`{"token":%q,"new_password":"newpassword1"}`, token)

	w = postJSON(r, "/api/auth/reset-password", body)
	require.Equal(t, http.StatusOK, w.Code)

	stored = users.users[user.ID]
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))

	// Tokens are single use.
	w = postJSON(r, "/api/auth/reset-password", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	r, users, _ := newAuthTestRouter()
	user := seedUser(t, users, "alice@example.com", "oldpassword1")

	token := "stale-token"
	expired := time.Now().Add(-2 * time.Hour)
	stored := users.users[user.ID]
	stored.ResetToken = &token
	stored.ResetTokenExpiry = &expired

	w := postJSON(r, "/api/auth/reset-password", `{"token":"stale-token","new_password":"newpassword1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.users[user.ID].PasswordHash), []byte("oldpassword1")))
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	r, _, mail := newAuthTestRouter()

	// The response does not reveal whether the account exists.
	w := postJSON(r, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mail.sent)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DOMAIN", "studyhub.app")
	require.NoError(t, auth.InitJWTSecret())

	r, users, _ := newAuthTestRouter()
	seedUser(t, users, "alice@example.com", "password123")

	w := postJSON(r, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			session = c
		}
	}

	require.NotNil(t, session)
	assert.NotEmpty(t, session.Value)
	assert.Equal(t, "studyhub.app", session.Domain)
	assert.Equal(t, int(auth.TokenTTL.Seconds()), session.MaxAge)
}
