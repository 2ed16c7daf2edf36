package main

import (
	"time"

	"student-dashboard-backend/internal/analytics"
	"student-dashboard-backend/internal/attendance"
	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/reminders"
	"student-dashboard-backend/internal/tasks"
	"student-dashboard-backend/internal/wellness"
)

// transactionRequest is the body of POST and PUT /api/transactions.
// An empty category is filled from the description.
type transactionRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// suggestRequest is the body of POST /api/categories/suggest
type suggestRequest struct {
	Description string `json:"description"`
}

// suggestResponse carries the suggestion plus whether the form should show it
type suggestResponse struct {
	Suggest    bool    `json:"suggest"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

const monthLayout = "2006-01"

// Analytics contains the dashboard overview. Month is the calendar month
// the month-relative parts were computed for.
type Analytics struct {
	Month          string                      `json:"month"`
	Summary        analytics.Summary           `json:"summary"`
	ByCategory     []analytics.SpendingInsight `json:"byCategory"`
	Health         analytics.Health            `json:"health"`
	Alerts         []analytics.CategoryTrend   `json:"alerts"`
	Prediction     *analytics.Prediction       `json:"prediction"`
	BudgetInsights []string                    `json:"budgetInsights"`
}

// currentAt reports whether a cached overview still describes now's month.
func (a Analytics) currentAt(now time.Time) bool {
	return a.Month == now.Format(monthLayout)
}

// taskListResponse pairs the filtered list with whole-list stats
type taskListResponse struct {
	Tasks []models.Task `json:"tasks"`
	Stats tasks.Stats   `json:"stats"`
}

// reminderView adds the derived due-in-days to a reminder
type reminderView struct {
	models.Reminder
	DaysUntilDue int  `json:"daysUntilDue"`
	Overdue      bool `json:"overdue"`
}

type reminderStatsResponse struct {
	reminders.Stats
	Upcoming []reminderView `json:"upcoming"`
}

// attendanceView adds lateness in minutes when an arrival time is known
type attendanceView struct {
	models.AttendanceRecord
	LatenessMinutes *int `json:"latenessMinutes,omitempty"`
}

type attendanceStatsResponse struct {
	Summary   attendance.Summary       `json:"summary"`
	Weekly    []attendance.WeekRate    `json:"weekly"`
	BySubject []attendance.SubjectRate `json:"bySubject"`
}

// assessmentResponse is a saved assessment with its rating band
type assessmentResponse struct {
	wellness.AssessmentRecord
	Band string `json:"band"`
}

type motivationRequest struct {
	Area string `json:"area"`
}

type textResponse struct {
	Text string `json:"text"`
}
