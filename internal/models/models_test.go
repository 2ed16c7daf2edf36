package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransactionValidate(t *testing.T) {
	t.Parallel()

	valid := Transaction{Type: TypeExpense, Amount: 9.5, Category: "Food", Description: "lunch", Date: "2024-03-01"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad type", func(t *Transaction) { t.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(t *Transaction) { t.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(t *Transaction) { t.Amount = -1 }, ErrInvalidAmount},
		{"blank description", func(t *Transaction) { t.Description = "   " }, ErrEmptyDescription},
		{"long description", func(t *Transaction) { t.Description = strings.Repeat("a", 256) }, ErrDescriptionTooLong},
		{"no category", func(t *Transaction) { t.Category = "" }, ErrEmptyCategory},
		{"bad date", func(t *Transaction) { t.Date = "03/01/2024" }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			require.ErrorIs(t, txn.Validate(), tt.want)
		})
	}
}

func TestTransactionNormalize(t *testing.T) {
	t.Parallel()

	txn := Transaction{Type: TypeExpense, Amount: 12.345, Category: " Food ", Description: "  lunch ", Date: "2024-03-01"}
	txn.Normalize()
	require.Equal(t, 12.35, txn.Amount)
	require.Equal(t, "Food", txn.Category)
	require.Equal(t, "lunch", txn.Description)

	tiny := Transaction{Type: TypeExpense, Amount: 0.004, Category: "Food", Description: "gum", Date: "2024-03-01"}
	tiny.Normalize()
	require.ErrorIs(t, tiny.Validate(), ErrInvalidAmount)
}

func TestParsedDate(t *testing.T) {
	t.Parallel()

	d := Transaction{Date: "2024-02-29"}.ParsedDate()
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
	require.True(t, Transaction{Date: "nope"}.ParsedDate().IsZero())
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	task := Task{Title: "Essay", Category: TaskAcademic, Priority: PriorityHigh, DueDate: "2024-05-01"}
	require.NoError(t, task.Validate())

	task.Category = "work"
	require.ErrorIs(t, task.Validate(), ErrInvalidCategory)
	task.Category = TaskPersonal
	task.Priority = "urgent"
	require.ErrorIs(t, task.Validate(), ErrInvalidPriority)
	task.Priority = PriorityLow
	task.Title = " "
	require.ErrorIs(t, task.Validate(), ErrEmptyTitle)
}

func TestReminderNormalize(t *testing.T) {
	t.Parallel()

	amount := 20.0
	r := Reminder{Kind: ReminderTask, Title: "Form", DueDate: "2024-06-01", Priority: PriorityLow, Amount: &amount, Category: "Bills"}
	r.Normalize()
	require.Equal(t, DefaultDueTime, r.DueTime)
	require.Equal(t, RecurNone, r.Recurrence)
	require.Nil(t, r.Amount)
	require.Empty(t, r.Category)
	require.NoError(t, r.Validate())

	bill := Reminder{Kind: ReminderBill, Title: "Rent", DueDate: "2024-06-01", Priority: PriorityHigh, Amount: &amount, Category: "Housing"}
	bill.Normalize()
	require.NotNil(t, bill.Amount)
	require.Equal(t, "Housing", bill.Category)
}

func TestReminderValidate(t *testing.T) {
	t.Parallel()

	neg := -5.0
	base := Reminder{Kind: ReminderBill, Title: "Rent", DueDate: "2024-06-01", DueTime: "10:30", Priority: PriorityHigh}
	require.NoError(t, base.Validate())

	r := base
	r.Kind = "event"
	require.ErrorIs(t, r.Validate(), ErrInvalidType)
	r = base
	r.DueTime = "25:00"
	require.ErrorIs(t, r.Validate(), ErrInvalidTime)
	r = base
	r.Amount = &neg
	require.ErrorIs(t, r.Validate(), ErrInvalidAmount)
	r = base
	r.Recurrence = "yearly"
	require.ErrorIs(t, r.Validate(), ErrInvalidRecurrence)
}

func TestReminderDue(t *testing.T) {
	t.Parallel()

	due, err := Reminder{DueDate: "2024-06-01"}.Due(time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), due)

	due, err = Reminder{DueDate: "2024-06-01", DueTime: "17:45"}.Due(time.UTC)
	require.NoError(t, err)
	require.Equal(t, 17, due.Hour())
	require.Equal(t, 45, due.Minute())
}

func TestAttendanceValidate(t *testing.T) {
	t.Parallel()

	a := AttendanceRecord{Date: "2024-02-01", Subject: "Math", ScheduledTime: "09:00", ActualTime: "09:05", Status: StatusLate}
	require.NoError(t, a.Validate())

	a.ActualTime = ""
	require.ErrorIs(t, a.Validate(), ErrMissingActualTime)

	a.Status = StatusAbsent
	a.ActualTime = "09:30"
	a.Normalize()
	require.Empty(t, a.ActualTime)
	require.NoError(t, a.Validate())

	a.Status = "excused"
	require.ErrorIs(t, a.Validate(), ErrInvalidStatus)
	a.Status = StatusOnTime
	a.Subject = ""
	require.ErrorIs(t, a.Validate(), ErrEmptySubject)
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, UserProfile{}.Validate())
	require.NoError(t, UserProfile{Email: "a@b.edu"}.Validate())
	require.ErrorIs(t, UserProfile{Email: "ab.edu"}.Validate(), ErrInvalidEmail)
}
