package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"student-dashboard-backend/internal/logger"
	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/store"
)

// Notification announces a reminder that is about to fall due.
type Notification struct {
	ReminderID string    `json:"reminderId"`
	Kind       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	DueAt      time.Time `json:"dueAt"`
	Amount     *float64  `json:"amount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewNotification builds the message for r as seen at now.
func NewNotification(r models.Reminder, due, now time.Time) Notification {
	hours := int(math.Round(due.Sub(now).Hours()))
	body := fmt.Sprintf("Due in %d hours", hours)
	if r.Kind == models.ReminderBill && r.Amount != nil && *r.Amount > 0 {
		body += fmt.Sprintf(" - %.2f", *r.Amount)
	}
	return Notification{
		ReminderID: r.ID,
		Kind:       r.Kind,
		Title:      "Reminder: " + r.Title,
		Body:       body,
		DueAt:      due,
		Amount:     r.Amount,
		Timestamp:  now,
	}
}

func (n Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// Notifier delivers notifications somewhere a user will see them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the context logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) error {
	log := logger.FromContext(ctx)
	log.Info().
		Str("reminder_id", n.ReminderID).
		Str("title", n.Title).
		Time("due_at", n.DueAt).
		Msg(n.Body)
	return nil
}

// Store is the slice of the reminder store the scanner needs.
type Store interface {
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	MarkNotified(ctx context.Context, id string) error
}

// Scanner periodically announces reminders that are due soon and marks them
// so each is announced once.
type Scanner struct {
	store    Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

func NewScanner(st Store, notifier Notifier, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scanner{store: st, notifier: notifier, interval: interval, now: time.Now}
}

// Scan notifies every reminder that is due soon and returns how many were sent.
// A failed delivery leaves the reminder unmarked so the next scan retries it.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	rs, err := s.store.ListReminders(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reminders: %w", err)
	}

	now := s.now()
	sent := 0
	for _, r := range rs {
		if !DueSoon(r, now) {
			continue
		}
		due, _ := r.Due(now.Location())
		if err := s.notifier.Notify(ctx, NewNotification(r, due, now)); err != nil {
			log.Error().Err(err).Str("reminder_id", r.ID).Msg("notify reminder")
			continue
		}
		// the reminder may have been completed or deleted since the list
		if err := s.store.MarkNotified(ctx, r.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Debug().Str("reminder_id", r.ID).Msg("reminder closed before it was marked")
				continue
			}
			return sent, fmt.Errorf("mark reminder %s notified: %w", r.ID, err)
		}
		sent++
	}
	return sent, nil
}

// Run scans once immediately and then on every tick until ctx is done.
func (s *Scanner) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).With().Str("component", "reminder-scanner").Logger()
	ctx = logger.WithContext(ctx, log)
	log.Info().Dur("interval", s.interval).Msg("reminder scanner started")

	s.scanAndLog(ctx, log)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reminder scanner stopped")
			return nil
		case <-ticker.C:
			s.scanAndLog(ctx, log)
		}
	}
}

func (s *Scanner) scanAndLog(ctx context.Context, log zerolog.Logger) {
	n, err := s.Scan(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder scan failed")
		return
	}
	if n > 0 {
		log.Info().Int("sent", n).Msg("reminder notifications sent")
	}
}
