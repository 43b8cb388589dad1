package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/studyhub-dev/studyhub/internal/logging"
	"github.com/studyhub-dev/studyhub/internal/mailer"
	"github.com/studyhub-dev/studyhub/internal/models"
	"github.com/studyhub-dev/studyhub/internal/repositories"
)

const (
	defaultInterval = 6 * time.Hour
	reminderWindow  = 24 * time.Hour
)

// Scheduler periodically emails users a digest of assignments due within
// the next day. Each run covers the full window, so a missed tick only
// delays a reminder instead of dropping it.
type Scheduler struct {
	assignments repositories.AssignmentRepository
	mail        mailer.Sender
	interval    time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewScheduler(assignments repositories.AssignmentRepository, mail mailer.Sender) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		assignments: assignments,
		mail:        mail,
		interval:    intervalFromEnv(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func intervalFromEnv() time.Duration {
	raw := os.Getenv("REMINDER_INTERVAL")

	if raw == "" {
		return defaultInterval
	}

	interval, err := time.ParseDuration(raw)

	if err != nil || interval <= 0 {
		logging.Logger.Warnf("Invalid REMINDER_INTERVAL %q, using default", raw)
		return defaultInterval
	}

	return interval
}

// Start launches the reminder loop with an immediate first run.
func (s *Scheduler) Start() {
	logging.Logger.Infof("Starting reminder scheduler (interval %v)", s.interval)

	go func() {
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

// Stop cancels the reminder loop.
func (s *Scheduler) Stop() {
	logging.Logger.Info("Stopping reminder scheduler")
	s.cancel()
}

func (s *Scheduler) runOnce() {
	now := time.Now()

	due, err := s.assignments.DueSoonAcrossUsers(now, now.Add(reminderWindow))

	if err != nil {
		logging.Logger.WithError(err).Error("Failed to load assignments for reminders")
		return
	}

	if len(due) == 0 {
		return
	}

	byUser := make(map[uint][]models.Assignment)

	for _, assignment := range due {
		byUser[assignment.UserID] = append(byUser[assignment.UserID], assignment)
	}

	for _, assignments := range byUser {
		s.sendDigest(assignments)
	}

	logging.Logger.Infof("Sent due date reminders to %d users", len(byUser))
}

func (s *Scheduler) sendDigest(assignments []models.Assignment) {
	user := assignments[0].User

	if user.Email == "" {
		return
	}

	var body strings.Builder

	fmt.Fprintf(&body, "Hi %s,\n\n", user.FirstName)

	if len(assignments) == 1 {
		body.WriteString("You have 1 assignment due within the next 24 hours:\n\n")
	} else {
		fmt.Fprintf(&body, "You have %d assignments due within the next 24 hours:\n\n", len(assignments))
	}

	for _, assignment := range assignments {
		fmt.Fprintf(&body, "- %s (%s), due %s\n",
			assignment.Name,
			assignment.Course.Name,
			assignment.DueDate.Format("Mon Jan 2 15:04"))
	}

	body.WriteString("\nGood luck!\nThe StudyHub Team")

	if err := s.mail.Send(user.Email, "Assignments due soon", body.String()); err != nil {
		logging.Logger.WithError(err).Warnf("Failed to send reminder to %s", user.Email)
	}
}
