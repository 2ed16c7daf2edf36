package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ClockLayout is the HH:MM format used for times of day.
const ClockLayout = "15:04"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	ErrInvalidType        = errors.New("invalid type")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 255 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDate        = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidTime        = errors.New("invalid time (expected HH:MM)")
	ErrEmptyTitle         = errors.New("empty title")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrEmptySubject       = errors.New("empty subject")
	ErrMissingActualTime  = errors.New("actual time required unless absent")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyAuthor        = errors.New("empty author")
	ErrEmptyContent       = errors.New("empty content")
)

// Transaction represents an income or expense entry
type Transaction struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	AutoSuggested bool    `json:"autoSuggested"`
}

// RoundCents rounds v half away from zero to two decimal places, the
// precision amounts are stored with.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Normalize trims text fields and rounds the amount to cents.
func (t *Transaction) Normalize() {
	t.Amount = RoundCents(t.Amount)
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
}

// Validate checks the fields the entry form enforces.
func (t Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}
	if !(t.Amount > 0) {
		return ErrInvalidAmount
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len(desc) > 255 {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return ValidateDate(t.Date)
}

// ParsedDate returns Date as a time; the zero time if it does not parse.
func (t Transaction) ParsedDate() time.Time {
	d, _ := time.Parse(DateLayout, t.Date)
	return d
}

// ValidateDate checks s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateClock checks s is an HH:MM time of day.
func ValidateClock(s string) error {
	if _, err := time.Parse(ClockLayout, s); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// UserProfile is the single locally stored user record.
type UserProfile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
	University   string `json:"university,omitempty"`
	Major        string `json:"major,omitempty"`
	Year         string `json:"year,omitempty"`
}

func (p UserProfile) Validate() error {
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
