package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/wellness"
)

const stampLayout = "2006-01-02T15:04:05.000000000Z"

// SQL is a Store over postgres or sqlite. Queries are written with ? and
// rebound to $N for postgres.
type SQL struct {
	db      *sql.DB
	dialect Dialect

	mu   sync.Mutex
	last int64
}

func NewSQL(db *sql.DB, dialect Dialect) *SQL {
	return &SQL{db: db, dialect: dialect}
}

func (s *SQL) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stamp returns a strictly increasing insertion marker.
func (s *SQL) stamp() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixNano()
	if now <= s.last {
		now = s.last + 1
	}
	s.last = now
	return now
}

func (s *SQL) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(q), args...)
}

// execOne runs a statement that must touch exactly one row.
func (s *SQL) execOne(ctx context.Context, q string, args ...any) error {
	res, err := s.exec(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func queryAll[T any](ctx context.Context, s *SQL, scan func(scanner) (T, error), q string, args ...any) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryOne[T any](ctx context.Context, s *SQL, scan func(scanner) (T, error), q string, args ...any) (T, error) {
	v, err := scan(s.db.QueryRowContext(ctx, s.rebind(q), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// transactions

const txnColumns = `id, type, amount, category, description, date, auto_suggested`

func scanTransaction(sc scanner) (models.Transaction, error) {
	var t models.Transaction
	err := sc.Scan(&t.ID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.Date, &t.AutoSuggested)
	return t, err
}

func (s *SQL) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	txns, err := queryAll(ctx, s, scanTransaction,
		`SELECT `+txnColumns+` FROM transactions ORDER BY date DESC, inserted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

func (s *SQL) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	return queryOne(ctx, s, scanTransaction, `SELECT `+txnColumns+` FROM transactions WHERE id = ?`, id)
}

func (s *SQL) AddTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	t.ID = uuid.NewString()
	t.Amount = models.RoundCents(t.Amount)
	_, err := s.exec(ctx, `
		INSERT INTO transactions (id, type, amount, category, description, date, auto_suggested, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.AutoSuggested, s.stamp())
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (s *SQL) UpdateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	t.Amount = models.RoundCents(t.Amount)
	err := s.execOne(ctx, `
		UPDATE transactions SET type = ?, amount = ?, category = ?, description = ?, date = ?, auto_suggested = ?
		WHERE id = ?`,
		t.Type, t.Amount, t.Category, t.Description, t.Date, t.AutoSuggested, t.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return t, nil
}

func (s *SQL) RemoveTransaction(ctx context.Context, id string) error {
	if err := s.execOne(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// tasks

const taskColumns = `id, title, description, category, priority, due_date, completed, created_at`

func scanTask(sc scanner) (models.Task, error) {
	var t models.Task
	err := sc.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.DueDate, &t.Completed, &t.CreatedAt)
	return t, err
}

func (s *SQL) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := queryAll(ctx, s, scanTask,
		`SELECT `+taskColumns+` FROM tasks ORDER BY due_date ASC, inserted_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQL) GetTask(ctx context.Context, id string) (models.Task, error) {
	return queryOne(ctx, s, scanTask, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
}

func (s *SQL) AddTask(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = uuid.NewString()
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().Format(models.DateLayout)
	}
	_, err := s.exec(ctx, `
		INSERT INTO tasks (id, title, description, category, priority, due_date, completed, created_at, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Category, t.Priority, t.DueDate, t.Completed, t.CreatedAt, s.stamp())
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *SQL) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	err := s.execOne(ctx, `
		UPDATE tasks SET title = ?, description = ?, category = ?, priority = ?, due_date = ?, completed = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Category, t.Priority, t.DueDate, t.Completed, t.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return s.GetTask(ctx, t.ID)
}

func (s *SQL) RemoveTask(ctx context.Context, id string) error {
	if err := s.execOne(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// reminders

const reminderColumns = `id, kind, title, description, due_date, due_time, amount, category, priority,
	completed, notification_sent, recurrence, created_at`

func scanReminder(sc scanner) (models.Reminder, error) {
	var (
		r      models.Reminder
		amount sql.NullFloat64
	)
	err := sc.Scan(&r.ID, &r.Kind, &r.Title, &r.Description, &r.DueDate, &r.DueTime, &amount, &r.Category,
		&r.Priority, &r.Completed, &r.NotificationSent, &r.Recurrence, &r.CreatedAt)
	if amount.Valid {
		r.Amount = &amount.Float64
	}
	return r, err
}

func nullAmount(a *float64) sql.NullFloat64 {
	if a == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: models.RoundCents(*a), Valid: true}
}

func (s *SQL) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	rs, err := queryAll(ctx, s, scanReminder,
		`SELECT `+reminderColumns+` FROM reminders ORDER BY due_date ASC, due_time ASC, inserted_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return rs, nil
}

func (s *SQL) GetReminder(ctx context.Context, id string) (models.Reminder, error) {
	return queryOne(ctx, s, scanReminder, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)
}

func (s *SQL) AddReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	r.ID = uuid.NewString()
	r.Amount = centsOrNil(r.Amount)
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.exec(ctx, `
		INSERT INTO reminders (id, kind, title, description, due_date, due_time, amount, category, priority,
			completed, notification_sent, recurrence, created_at, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Title, r.Description, r.DueDate, r.DueTime, nullAmount(r.Amount), r.Category, r.Priority,
		r.Completed, r.NotificationSent, r.Recurrence, r.CreatedAt, s.stamp())
	if err != nil {
		return models.Reminder{}, fmt.Errorf("insert reminder: %w", err)
	}
	return r, nil
}

func (s *SQL) UpdateReminder(ctx context.Context, r models.Reminder) (models.Reminder, error) {
	err := s.execOne(ctx, `
		UPDATE reminders SET kind = ?, title = ?, description = ?, due_date = ?, due_time = ?, amount = ?,
			category = ?, priority = ?, completed = ?, notification_sent = ?, recurrence = ?
		WHERE id = ?`,
		r.Kind, r.Title, r.Description, r.DueDate, r.DueTime, nullAmount(r.Amount),
		r.Category, r.Priority, r.Completed, r.NotificationSent, r.Recurrence, r.ID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}
	return s.GetReminder(ctx, r.ID)
}

func (s *SQL) MarkNotified(ctx context.Context, id string) error {
	err := s.execOne(ctx, `UPDATE reminders SET notification_sent = TRUE WHERE id = ? AND completed = FALSE`, id)
	if err != nil {
		return fmt.Errorf("mark reminder notified: %w", err)
	}
	return nil
}

func (s *SQL) RemoveReminder(ctx context.Context, id string) error {
	if err := s.execOne(ctx, `DELETE FROM reminders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// attendance

const attendanceColumns = `id, date, subject, scheduled_time, actual_time, status, notes`

func scanAttendance(sc scanner) (models.AttendanceRecord, error) {
	var a models.AttendanceRecord
	err := sc.Scan(&a.ID, &a.Date, &a.Subject, &a.ScheduledTime, &a.ActualTime, &a.Status, &a.Notes)
	return a, err
}

func (s *SQL) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	recs, err := queryAll(ctx, s, scanAttendance,
		`SELECT `+attendanceColumns+` FROM attendance ORDER BY date DESC, scheduled_time ASC, inserted_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return recs, nil
}

func (s *SQL) GetAttendance(ctx context.Context, id string) (models.AttendanceRecord, error) {
	return queryOne(ctx, s, scanAttendance, `SELECT `+attendanceColumns+` FROM attendance WHERE id = ?`, id)
}

func (s *SQL) AddAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	a.ID = uuid.NewString()
	_, err := s.exec(ctx, `
		INSERT INTO attendance (id, date, subject, scheduled_time, actual_time, status, notes, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Date, a.Subject, a.ScheduledTime, a.ActualTime, a.Status, a.Notes, s.stamp())
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("insert attendance: %w", err)
	}
	return a, nil
}

func (s *SQL) UpdateAttendance(ctx context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	err := s.execOne(ctx, `
		UPDATE attendance SET date = ?, subject = ?, scheduled_time = ?, actual_time = ?, status = ?, notes = ?
		WHERE id = ?`,
		a.Date, a.Subject, a.ScheduledTime, a.ActualTime, a.Status, a.Notes, a.ID)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("update attendance: %w", err)
	}
	return a, nil
}

func (s *SQL) RemoveAttendance(ctx context.Context, id string) error {
	if err := s.execOne(ctx, `DELETE FROM attendance WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

// profile

const profileID = 1

func (s *SQL) GetProfile(ctx context.Context) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT first_name, last_name, email, profile_photo, student_id, university, major, year
		FROM profile WHERE id = ?`), profileID).
		Scan(&p.FirstName, &p.LastName, &p.Email, &p.ProfilePhoto, &p.StudentID, &p.University, &p.Major, &p.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, nil
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *SQL) SaveProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	_, err := s.exec(ctx, `
		INSERT INTO profile (id, first_name, last_name, email, profile_photo, student_id, university, major, year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name, last_name = excluded.last_name, email = excluded.email,
			profile_photo = excluded.profile_photo, student_id = excluded.student_id,
			university = excluded.university, major = excluded.major, year = excluded.year`,
		profileID, p.FirstName, p.LastName, p.Email, p.ProfilePhoto, p.StudentID, p.University, p.Major, p.Year)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// assessments

func (s *SQL) AddAssessment(ctx context.Context, rec wellness.AssessmentRecord) (wellness.AssessmentRecord, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return wellness.AssessmentRecord{}, fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.exec(ctx, `INSERT INTO assessments (id, created_at, report) VALUES (?, ?, ?)`,
		rec.ID, rec.CreatedAt.UTC().Format(stampLayout), string(report))
	if err != nil {
		return wellness.AssessmentRecord{}, fmt.Errorf("insert assessment: %w", err)
	}
	return rec, nil
}

func scanAssessment(sc scanner) (wellness.AssessmentRecord, error) {
	var (
		rec             wellness.AssessmentRecord
		created, report string
	)
	if err := sc.Scan(&rec.ID, &created, &report); err != nil {
		return rec, err
	}
	ts, err := time.Parse(stampLayout, created)
	if err != nil {
		return rec, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	rec.CreatedAt = ts
	if err := json.Unmarshal([]byte(report), &rec.Report); err != nil {
		return rec, fmt.Errorf("unmarshal report: %w", err)
	}
	return rec, nil
}

func (s *SQL) ListAssessments(ctx context.Context) ([]wellness.AssessmentRecord, error) {
	recs, err := queryAll(ctx, s, scanAssessment,
		`SELECT id, created_at, report FROM assessments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return recs, nil
}

// tips

const tipColumns = `id, author, title, content, category, likes, comments, created_at`

func scanTip(sc scanner) (models.Tip, error) {
	var (
		t       models.Tip
		created string
	)
	if err := sc.Scan(&t.ID, &t.Author, &t.Title, &t.Content, &t.Category, &t.Likes, &t.Comments, &created); err != nil {
		return t, err
	}
	ts, err := time.Parse(stampLayout, created)
	if err != nil {
		return t, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	t.CreatedAt = ts
	return t, nil
}

func (s *SQL) ListTips(ctx context.Context) ([]models.Tip, error) {
	tips, err := queryAll(ctx, s, scanTip,
		`SELECT `+tipColumns+` FROM tips ORDER BY created_at DESC, inserted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return tips, nil
}

func (s *SQL) AddTip(ctx context.Context, t models.Tip) (models.Tip, error) {
	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.CreatedAt = t.CreatedAt.UTC()
	_, err := s.exec(ctx, `
		INSERT INTO tips (`+tipColumns+`, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Author, t.Title, t.Content, t.Category, t.Likes, t.Comments, t.CreatedAt.Format(stampLayout), s.stamp())
	if err != nil {
		return models.Tip{}, fmt.Errorf("insert tip: %w", err)
	}
	return t, nil
}

func (s *SQL) LikeTip(ctx context.Context, id string) (models.Tip, error) {
	if err := s.execOne(ctx, `UPDATE tips SET likes = likes + 1 WHERE id = ?`, id); err != nil {
		return models.Tip{}, fmt.Errorf("like tip: %w", err)
	}
	return queryOne(ctx, s, scanTip, `SELECT `+tipColumns+` FROM tips WHERE id = ?`, id)
}
