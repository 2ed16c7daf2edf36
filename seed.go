package main

import (
	"context"
	"fmt"
	"time"

	"student-dashboard-backend/internal/categorize"
	"student-dashboard-backend/internal/logger"
	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/store"
)

type demoTxn struct {
	daysAgo     int
	description string
	amount      float64
	kind        string
	category    string // expenses leave this empty and take the suggestion
}

var demoTransactions = []demoTxn{
	{28, "Monthly allowance", 1500.00, models.TypeIncome, "Allowance"},
	{25, "Part-time tutoring", 420.00, models.TypeIncome, "Part-time Job"},
	{24, "Groceries for the week", 96.72, models.TypeExpense, ""},
	{22, "Jeepney and bus fare", 18.50, models.TypeExpense, ""},
	{20, "Notebook and pens", 12.40, models.TypeExpense, ""},
	{19, "Movie ticket", 9.00, models.TypeExpense, ""},
	{16, "Pharmacy vitamins", 15.25, models.TypeExpense, ""},
	{14, "Lunch at the canteen", 6.80, models.TypeExpense, ""},
	{11, "Printing lab report", 3.60, models.TypeExpense, ""},
	{8, "Concert with friends", 35.00, models.TypeExpense, ""},
	{6, "New shoes", 48.00, models.TypeExpense, ""},
	{4, "Grab ride home", 7.30, models.TypeExpense, ""},
	{1, "Pizza dinner", 14.80, models.TypeExpense, ""},
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// seedDemoData fills an empty store with a month of demo activity and drops
// cached snapshots once anything was written.
// Idempotent: does nothing once any transaction exists.
func seedDemoData(ctx context.Context, s store.Store, inv cacheInvalidator, now time.Time) error {
	existing, err := s.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("checking transactions count: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	day := func(offset int) string { return now.AddDate(0, 0, offset).Format(models.DateLayout) }

	for _, d := range demoTransactions {
		t := models.Transaction{
			Type:        d.kind,
			Amount:      d.amount,
			Category:    d.category,
			Description: d.description,
			Date:        day(-d.daysAgo),
		}
		if t.Category == "" {
			t.Category = categorize.Suggest(t.Description).Category
			t.AutoSuggested = true
		}
		if _, err := s.AddTransaction(ctx, t); err != nil {
			return fmt.Errorf("seeding demo transactions: %w", err)
		}
	}

	demoTasks := []models.Task{
		{Title: "Finish research proposal", Category: models.TaskAcademic, Priority: models.PriorityHigh, DueDate: day(3)},
		{Title: "Study for networking quiz", Category: models.TaskAcademic, Priority: models.PriorityMedium, DueDate: day(1)},
		{Title: "Do laundry", Category: models.TaskPersonal, Priority: models.PriorityLow, DueDate: day(-1)},
	}
	for _, t := range demoTasks {
		if _, err := s.AddTask(ctx, t); err != nil {
			return fmt.Errorf("seeding demo tasks: %w", err)
		}
	}

	rent, phone := 250.0, 15.0
	demoReminders := []models.Reminder{
		{Kind: models.ReminderBill, Title: "Dorm rent", DueDate: day(5), Amount: &rent, Category: "Housing", Priority: models.PriorityHigh, Recurrence: models.RecurMonthly},
		{Kind: models.ReminderBill, Title: "Phone load", DueDate: day(1), Amount: &phone, Category: "Utilities", Priority: models.PriorityMedium, Recurrence: models.RecurMonthly},
		{Kind: models.ReminderTask, Title: "Submit scholarship form", DueDate: day(2), DueTime: "17:00", Priority: models.PriorityHigh},
	}
	for _, r := range demoReminders {
		r.Normalize()
		if _, err := s.AddReminder(ctx, r); err != nil {
			return fmt.Errorf("seeding demo reminders: %w", err)
		}
	}

	demoAttendance := []models.AttendanceRecord{
		{Date: day(-7), Subject: "Networking 2 (LEC)", ScheduledTime: "08:00", ActualTime: "07:55", Status: models.StatusOnTime},
		{Date: day(-6), Subject: "Business Analytics (LAB)", ScheduledTime: "10:00", ActualTime: "10:12", Status: models.StatusLate},
		{Date: day(-5), Subject: "IT Research Methods (LEC)", ScheduledTime: "13:00", Status: models.StatusAbsent},
		{Date: day(-2), Subject: "Networking 2 (LEC)", ScheduledTime: "08:00", ActualTime: "08:00", Status: models.StatusOnTime},
	}
	for _, a := range demoAttendance {
		if _, err := s.AddAttendance(ctx, a); err != nil {
			return fmt.Errorf("seeding demo attendance: %w", err)
		}
	}

	demoTips := []models.Tip{
		{Author: "Alex Kim", Title: "50/30/20 Budget Rule", Category: models.TipBudgeting, Likes: 234, Comments: 18,
			Content:   "Allocate 50% of income to needs, 30% to wants, and 20% to savings. This simple rule helped me save ₱20,000 monthly!",
			CreatedAt: now.AddDate(0, 0, -2)},
		{Author: "Maria Santos", Title: "Meal Prep Saves Time & Money", Category: models.TipLifestyle, Likes: 189, Comments: 24,
			Content:   "Preparing meals on Sunday cuts my weekly food expenses by 40% and saves 2 hours daily. Win-win situation!",
			CreatedAt: now.AddDate(0, 0, -4)},
		{Author: "John Reyes", Title: "Automate Your Savings", Category: models.TipSavings, Likes: 312, Comments: 42,
			Content:   "Set up automatic transfers to a separate savings account. Out of sight, out of mind. I've saved ₱50,000 in 6 months!",
			CreatedAt: now.AddDate(0, 0, -7)},
	}
	for _, t := range demoTips {
		if _, err := s.AddTip(ctx, t); err != nil {
			return fmt.Errorf("seeding demo tips: %w", err)
		}
	}

	if err := inv.Invalidate(ctx); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("cache invalidation after seeding failed")
	}
	return nil
}
