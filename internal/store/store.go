// Package store holds the dashboard's mutable state behind explicit
// add/update/remove operations. Callers take snapshots with the List methods
// and hand them to the pure analytics and categorize packages.
package store

import (
	"context"
	"errors"

	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/wellness"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("not found")

type Transactions interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	AddTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	RemoveTransaction(ctx context.Context, id string) error
}

type Tasks interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	AddTask(ctx context.Context, t models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, t models.Task) (models.Task, error)
	RemoveTask(ctx context.Context, id string) error
}

type Reminders interface {
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	GetReminder(ctx context.Context, id string) (models.Reminder, error)
	AddReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	UpdateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error)
	RemoveReminder(ctx context.Context, id string) error
	// MarkNotified sets only the notification flag of an open reminder.
	// It returns ErrNotFound when the reminder is gone or already completed.
	MarkNotified(ctx context.Context, id string) error
}

type Attendance interface {
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
	GetAttendance(ctx context.Context, id string) (models.AttendanceRecord, error)
	AddAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error)
	RemoveAttendance(ctx context.Context, id string) error
}

type Profiles interface {
	// GetProfile returns the zero profile when none was saved yet.
	GetProfile(ctx context.Context) (models.UserProfile, error)
	SaveProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
}

type Assessments interface {
	AddAssessment(ctx context.Context, rec wellness.AssessmentRecord) (wellness.AssessmentRecord, error)
	ListAssessments(ctx context.Context) ([]wellness.AssessmentRecord, error)
}

type Tips interface {
	// ListTips returns tips newest first.
	ListTips(ctx context.Context) ([]models.Tip, error)
	AddTip(ctx context.Context, t models.Tip) (models.Tip, error)
	// LikeTip adds one like and returns the updated tip.
	LikeTip(ctx context.Context, id string) (models.Tip, error)
}

// Store is everything the HTTP layer and workers need.
type Store interface {
	Transactions
	Tasks
	Reminders
	Attendance
	Profiles
	Assessments
	Tips
	Ping(ctx context.Context) error
	Close() error
}
