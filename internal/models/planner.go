package models

import (
	"strings"
	"time"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	TaskAcademic = "academic"
	TaskPersonal = "personal"
)

const (
	ReminderBill = "bill"
	ReminderTask = "task"
)

const (
	RecurNone    = "none"
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
)

const (
	StatusOnTime = "on-time"
	StatusLate   = "late"
	StatusAbsent = "absent"
)

// DefaultDueTime is used when a reminder has no time of day.
const DefaultDueTime = "09:00"

// Task is an academic or personal to-do item
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Category != TaskAcademic && t.Category != TaskPersonal {
		return ErrInvalidCategory
	}
	if !validPriority(t.Priority) {
		return ErrInvalidPriority
	}
	return ValidateDate(t.DueDate)
}

// Reminder is a bill or task with a due date and optional recurrence
type Reminder struct {
	ID               string   `json:"id"`
	Kind             string   `json:"type"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	DueDate          string   `json:"dueDate"`
	DueTime          string   `json:"dueTime,omitempty"`
	Amount           *float64 `json:"amount,omitempty"`
	Category         string   `json:"category,omitempty"`
	Priority         string   `json:"priority"`
	Completed        bool     `json:"isCompleted"`
	NotificationSent bool     `json:"notificationSent"`
	Recurrence       string   `json:"recurrence,omitempty"`
	CreatedAt        string   `json:"createdAt"`
}

// Normalize fills defaults and drops bill-only fields from tasks.
func (r *Reminder) Normalize() {
	if r.DueTime == "" {
		r.DueTime = DefaultDueTime
	}
	if r.Recurrence == "" {
		r.Recurrence = RecurNone
	}
	if r.Kind != ReminderBill {
		r.Amount = nil
		r.Category = ""
	}
	if r.Amount != nil {
		cents := RoundCents(*r.Amount)
		r.Amount = &cents
	}
}

func (r Reminder) Validate() error {
	if r.Kind != ReminderBill && r.Kind != ReminderTask {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if err := ValidateDate(r.DueDate); err != nil {
		return err
	}
	if r.DueTime != "" {
		if err := ValidateClock(r.DueTime); err != nil {
			return err
		}
	}
	if r.Amount != nil && *r.Amount < 0 {
		return ErrInvalidAmount
	}
	if !validPriority(r.Priority) {
		return ErrInvalidPriority
	}
	switch r.Recurrence {
	case "", RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
	default:
		return ErrInvalidRecurrence
	}
	return nil
}

// Due returns the due instant in loc, combining DueDate and DueTime.
func (r Reminder) Due(loc *time.Location) (time.Time, error) {
	clock := r.DueTime
	if clock == "" {
		clock = DefaultDueTime
	}
	return time.ParseInLocation(DateLayout+" "+ClockLayout, r.DueDate+" "+clock, loc)
}

// AttendanceRecord logs arrival for a scheduled class
type AttendanceRecord struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Subject       string `json:"subject"`
	ScheduledTime string `json:"scheduledTime"`
	ActualTime    string `json:"actualTime"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
}

// Normalize clears the arrival time of absent records.
func (a *AttendanceRecord) Normalize() {
	if a.Status == StatusAbsent {
		a.ActualTime = ""
	}
}

func (a AttendanceRecord) Validate() error {
	if err := ValidateDate(a.Date); err != nil {
		return err
	}
	if strings.TrimSpace(a.Subject) == "" {
		return ErrEmptySubject
	}
	if err := ValidateClock(a.ScheduledTime); err != nil {
		return err
	}
	switch a.Status {
	case StatusOnTime, StatusLate:
		if a.ActualTime == "" {
			return ErrMissingActualTime
		}
		return ValidateClock(a.ActualTime)
	case StatusAbsent:
		return nil
	default:
		return ErrInvalidStatus
	}
}

func validPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
