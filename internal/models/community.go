package models

import (
	"strings"
	"time"
)

const (
	TipBudgeting    = "budgeting"
	TipSavings      = "savings"
	TipLifestyle    = "lifestyle"
	TipProductivity = "productivity"
)

// Tip is a budgeting or productivity hack shared by a student
type Tip struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"timestamp"`
}

// Normalize trims text fields and defaults the category to budgeting.
func (t *Tip) Normalize() {
	t.Author = strings.TrimSpace(t.Author)
	t.Title = strings.TrimSpace(t.Title)
	t.Content = strings.TrimSpace(t.Content)
	if t.Category == "" {
		t.Category = TipBudgeting
	}
}

func (t Tip) Validate() error {
	switch {
	case t.Author == "":
		return ErrEmptyAuthor
	case t.Title == "":
		return ErrEmptyTitle
	case t.Content == "":
		return ErrEmptyContent
	}
	switch t.Category {
	case TipBudgeting, TipSavings, TipLifestyle, TipProductivity:
		return nil
	}
	return ErrInvalidCategory
}
