// Package tasks filters and summarizes the to-do list.
package tasks

import (
	"time"

	"student-dashboard-backend/internal/models"
)

const (
	All       = "all"
	Completed = "completed"
	Pending   = "pending"
)

// Filter selects tasks. Empty fields and "all" match everything.
type Filter struct {
	Category string `form:"category"`
	Priority string `form:"priority"`
	Status   string `form:"status"`
}

func matches(want, got string) bool {
	return want == "" || want == All || want == got
}

// Apply returns the tasks matching f, keeping input order.
func Apply(list []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if !matches(f.Category, t.Category) || !matches(f.Priority, t.Priority) {
			continue
		}
		switch f.Status {
		case Completed:
			if !t.Completed {
				continue
			}
		case Pending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// Overdue reports whether t is still open and due before today.
func Overdue(t models.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	return t.DueDate < now.Format(models.DateLayout)
}

func Summarize(list []models.Task, now time.Time) Stats {
	s := Stats{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if Overdue(t, now) {
			s.Overdue++
		}
	}
	return s
}
