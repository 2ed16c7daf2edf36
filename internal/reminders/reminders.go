// Package reminders selects, summarizes and schedules bill and task reminders.
package reminders

import (
	"cmp"
	"math"
	"slices"
	"time"

	"student-dashboard-backend/internal/models"
)

// NotifyWindow is how far ahead of the due time a notification goes out.
const NotifyWindow = 24 * time.Hour

// UpcomingLimit is the number of reminders shown in the upcoming panel.
const UpcomingLimit = 5

// Active returns open reminders of kind ("" or "all" for both), earliest due first.
func Active(rs []models.Reminder, kind string) []models.Reminder {
	out := make([]models.Reminder, 0, len(rs))
	for _, r := range rs {
		if r.Completed {
			continue
		}
		if kind != "" && kind != "all" && r.Kind != kind {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b models.Reminder) int { return cmp.Compare(a.DueDate, b.DueDate) })
	return out
}

// Upcoming returns at most n open reminders due after now, in input order.
func Upcoming(rs []models.Reminder, now time.Time, n int) []models.Reminder {
	out := make([]models.Reminder, 0, n)
	for _, r := range rs {
		if len(out) == n {
			break
		}
		if r.Completed {
			continue
		}
		due, err := r.Due(now.Location())
		if err != nil || !due.After(now) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DaysUntilDue is the number of days from now to the start of the due date,
// rounded up. Negative values mean overdue.
func DaysUntilDue(r models.Reminder, now time.Time) (int, error) {
	due, err := time.ParseInLocation(models.DateLayout, r.DueDate, now.Location())
	if err != nil {
		return 0, models.ErrInvalidDate
	}
	days := due.Sub(now).Hours() / 24
	return int(math.Ceil(days)), nil
}

// DueSoon reports whether r should be announced now: it is open, not yet
// announced and due within NotifyWindow.
func DueSoon(r models.Reminder, now time.Time) bool {
	if r.Completed || r.NotificationSent {
		return false
	}
	due, err := r.Due(now.Location())
	if err != nil {
		return false
	}
	until := due.Sub(now)
	return until > 0 && until <= NotifyWindow
}

type Stats struct {
	Active                int     `json:"active"`
	Completed             int     `json:"completed"`
	Bills                 int     `json:"bills"`
	Tasks                 int     `json:"tasks"`
	PendingTasks          int     `json:"pendingTasks"`
	OutstandingBillAmount float64 `json:"outstandingBillAmount"`
}

func Summarize(rs []models.Reminder) Stats {
	var s Stats
	for _, r := range rs {
		if r.Completed {
			s.Completed++
		} else {
			s.Active++
		}
		switch r.Kind {
		case models.ReminderBill:
			s.Bills++
			if !r.Completed && r.Amount != nil {
				s.OutstandingBillAmount += *r.Amount
			}
		case models.ReminderTask:
			s.Tasks++
			if !r.Completed {
				s.PendingTasks++
			}
		}
	}
	s.OutstandingBillAmount = math.Round(s.OutstandingBillAmount*100) / 100
	return s
}

// NextOccurrence returns the next instance of a recurring reminder, with the
// due date advanced and the completion and notification flags cleared.
// ok is false for one-off reminders.
func NextOccurrence(r models.Reminder) (next models.Reminder, ok bool, err error) {
	due, err := time.Parse(models.DateLayout, r.DueDate)
	if err != nil {
		return models.Reminder{}, false, models.ErrInvalidDate
	}
	switch r.Recurrence {
	case models.RecurDaily:
		due = due.AddDate(0, 0, 1)
	case models.RecurWeekly:
		due = due.AddDate(0, 0, 7)
	case models.RecurMonthly:
		due = addMonth(due)
	default:
		return models.Reminder{}, false, nil
	}

	next = r
	next.ID = ""
	next.CreatedAt = ""
	next.DueDate = due.Format(models.DateLayout)
	next.Completed = false
	next.NotificationSent = false
	return next, true, nil
}

// addMonth keeps the day of month, clamping to the last day of shorter months.
func addMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	return firstOfNext.AddDate(0, 0, min(t.Day(), lastDay)-1)
}
