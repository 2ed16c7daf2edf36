package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/wellness"
)

type row[T any] struct {
	seq int64
	val T
}

// table keeps rows keyed by id and remembers insertion order.
type table[T any] struct {
	rows map[string]row[T]
}

func newTable[T any]() table[T] { return table[T]{rows: make(map[string]row[T])} }

// sorted returns values ordered by less, falling back to insertion order.
func (t table[T]) sorted(less func(a, b T) int, newestFirst bool) []T {
	rows := make([]row[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	slices.SortFunc(rows, func(a, b row[T]) int {
		if c := less(a.val, b.val); c != 0 {
			return c
		}
		if newestFirst {
			return cmp.Compare(b.seq, a.seq)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.val
	}
	return out
}

// centsOrNil returns a rounded copy of a, so callers' values are not aliased.
func centsOrNil(a *float64) *float64 {
	if a == nil {
		return nil
	}
	v := models.RoundCents(*a)
	return &v
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	seq         int64
	txns        table[models.Transaction]
	tasks       table[models.Task]
	reminders   table[models.Reminder]
	attendance  table[models.AttendanceRecord]
	assessments table[wellness.AssessmentRecord]
	tips        table[models.Tip]
	profile     models.UserProfile
}

func NewMemory() *Memory {
	return &Memory{
		txns:        newTable[models.Transaction](),
		tasks:       newTable[models.Task](),
		reminders:   newTable[models.Reminder](),
		attendance:  newTable[models.AttendanceRecord](),
		assessments: newTable[wellness.AssessmentRecord](),
		tips:        newTable[models.Tip](),
	}
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

func (m *Memory) next() int64 {
	m.seq++
	return m.seq
}

func insert[T any](m *Memory, t *table[T], id string, v T) {
	t.rows[id] = row[T]{seq: m.next(), val: v}
}

func replace[T any](t *table[T], id string, v T) bool {
	r, ok := t.rows[id]
	if !ok {
		return false
	}
	r.val = v
	t.rows[id] = r
	return true
}

func get[T any](t *table[T], id string) (T, error) {
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return r.val, nil
}

func remove[T any](t *table[T], id string) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// transactions

func (m *Memory) ListTransactions(context.Context) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.txns.sorted(func(a, b models.Transaction) int { return cmp.Compare(b.Date, a.Date) }, true), nil
}

func (m *Memory) GetTransaction(_ context.Context, id string) (models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return get(&m.txns, id)
}

func (m *Memory) AddTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	t.Amount = models.RoundCents(t.Amount)
	insert(m, &m.txns, t.ID, t)
	return t, nil
}

func (m *Memory) UpdateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.Amount = models.RoundCents(t.Amount)
	if !replace(&m.txns, t.ID, t) {
		return models.Transaction{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) RemoveTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(&m.txns, id)
}

// tasks

func (m *Memory) ListTasks(context.Context) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tasks.sorted(func(a, b models.Task) int { return cmp.Compare(a.DueDate, b.DueDate) }, false), nil
}

func (m *Memory) GetTask(_ context.Context, id string) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return get(&m.tasks, id)
}

func (m *Memory) AddTask(_ context.Context, t models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().Format(models.DateLayout)
	}
	insert(m, &m.tasks, t.ID, t)
	return t, nil
}

func (m *Memory) UpdateTask(_ context.Context, t models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.tasks.rows[t.ID]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	t.CreatedAt = old.val.CreatedAt
	replace(&m.tasks, t.ID, t)
	return t, nil
}

func (m *Memory) RemoveTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(&m.tasks, id)
}

// reminders

func (m *Memory) ListReminders(context.Context) ([]models.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reminders.sorted(func(a, b models.Reminder) int {
		if c := cmp.Compare(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return cmp.Compare(a.DueTime, b.DueTime)
	}, false), nil
}

func (m *Memory) GetReminder(_ context.Context, id string) (models.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return get(&m.reminders, id)
}

func (m *Memory) AddReminder(_ context.Context, r models.Reminder) (models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.NewString()
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.Amount = centsOrNil(r.Amount)
	insert(m, &m.reminders, r.ID, r)
	return r, nil
}

func (m *Memory) UpdateReminder(_ context.Context, r models.Reminder) (models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.reminders.rows[r.ID]
	if !ok {
		return models.Reminder{}, ErrNotFound
	}
	r.CreatedAt = old.val.CreatedAt
	r.Amount = centsOrNil(r.Amount)
	replace(&m.reminders, r.ID, r)
	return r, nil
}

func (m *Memory) MarkNotified(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.reminders.rows[id]
	if !ok || old.val.Completed {
		return ErrNotFound
	}
	old.val.NotificationSent = true
	m.reminders.rows[id] = old
	return nil
}

func (m *Memory) RemoveReminder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(&m.reminders, id)
}

// attendance

func (m *Memory) ListAttendance(context.Context) ([]models.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attendance.sorted(func(a, b models.AttendanceRecord) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ScheduledTime, b.ScheduledTime)
	}, false), nil
}

func (m *Memory) GetAttendance(_ context.Context, id string) (models.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return get(&m.attendance, id)
}

func (m *Memory) AddAttendance(_ context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	insert(m, &m.attendance, a.ID, a)
	return a, nil
}

func (m *Memory) UpdateAttendance(_ context.Context, a models.AttendanceRecord) (models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !replace(&m.attendance, a.ID, a) {
		return models.AttendanceRecord{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) RemoveAttendance(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return remove(&m.attendance, id)
}

// profile

func (m *Memory) GetProfile(context.Context) (models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile, nil
}

func (m *Memory) SaveProfile(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return p, nil
}

// assessments

func (m *Memory) AddAssessment(_ context.Context, rec wellness.AssessmentRecord) (wellness.AssessmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	insert(m, &m.assessments, rec.ID, rec)
	return rec, nil
}

func (m *Memory) ListAssessments(context.Context) ([]wellness.AssessmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assessments.sorted(func(a, b wellness.AssessmentRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}, true), nil
}

// tips

func (m *Memory) ListTips(context.Context) ([]models.Tip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tips.sorted(func(a, b models.Tip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}, true), nil
}

func (m *Memory) AddTip(_ context.Context, t models.Tip) (models.Tip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	insert(m, &m.tips, t.ID, t)
	return t, nil
}

func (m *Memory) LikeTip(_ context.Context, id string) (models.Tip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.tips.rows[id]
	if !ok {
		return models.Tip{}, ErrNotFound
	}
	r.val.Likes++
	m.tips.rows[id] = r
	return r.val, nil
}
