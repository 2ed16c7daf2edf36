// Package attendance computes punctuality figures from class attendance records.
package attendance

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"student-dashboard-backend/internal/models"
)

// Goal is the punctuality rate students are nudged toward.
const Goal = 95

// Lateness returns actual minus scheduled in minutes. ok is false when
// either clock is missing or malformed.
func Lateness(scheduled, actual string) (minutes int, ok bool) {
	if actual == "" {
		return 0, false
	}
	s, err := time.Parse(models.ClockLayout, scheduled)
	if err != nil {
		return 0, false
	}
	a, err := time.Parse(models.ClockLayout, actual)
	if err != nil {
		return 0, false
	}
	return int(math.Round(a.Sub(s).Minutes())), true
}

func rate(onTime, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(onTime) / float64(total) * 100))
}

type Summary struct {
	Total           int `json:"total"`
	OnTime          int `json:"onTime"`
	Late            int `json:"late"`
	Absent          int `json:"absent"`
	PunctualityRate int `json:"punctualityRate"`
	GoalGap         int `json:"goalGap"`
}

func Summarize(records []models.AttendanceRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Total++
		switch r.Status {
		case models.StatusOnTime:
			s.OnTime++
		case models.StatusLate:
			s.Late++
		case models.StatusAbsent:
			s.Absent++
		}
	}
	s.PunctualityRate = rate(s.OnTime, s.Total)
	s.GoalGap = max(Goal-s.PunctualityRate, 0)
	return s
}

// WeekRate is the punctuality of one week-of-month bucket.
type WeekRate struct {
	Week            string `json:"week"`
	OnTime          int    `json:"onTime"`
	Late            int    `json:"late"`
	Absent          int    `json:"absent"`
	Total           int    `json:"total"`
	PunctualityRate int    `json:"punctualityRate"`
}

// WeekKey buckets a date by day of month: days 1-7 are W1, 8-14 W2, and so on.
func WeekKey(date string) (string, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", models.ErrInvalidDate
	}
	return fmt.Sprintf("W%d", (d.Day()+6)/7), nil
}

// Weekly groups records by WeekKey. Records with bad dates are skipped.
func Weekly(records []models.AttendanceRecord) []WeekRate {
	byWeek := make(map[string]*WeekRate)
	for _, r := range records {
		key, err := WeekKey(r.Date)
		if err != nil {
			continue
		}
		w, ok := byWeek[key]
		if !ok {
			w = &WeekRate{Week: key}
			byWeek[key] = w
		}
		w.Total++
		switch r.Status {
		case models.StatusOnTime:
			w.OnTime++
		case models.StatusLate:
			w.Late++
		default:
			w.Absent++
		}
	}

	out := make([]WeekRate, 0, len(byWeek))
	for _, w := range byWeek {
		w.PunctualityRate = rate(w.OnTime, w.Total)
		out = append(out, *w)
	}
	slices.SortFunc(out, func(a, b WeekRate) int { return compareWeeks(a.Week, b.Week) })
	return out
}

// compareWeeks orders W2 before W10.
func compareWeeks(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), cmp.Compare(a, b))
}

type SubjectRate struct {
	Subject         string `json:"subject"`
	Total           int    `json:"total"`
	PunctualityRate int    `json:"punctualityRate"`
}

// BySubject reports punctuality per subject, sorted by subject name.
func BySubject(records []models.AttendanceRecord) []SubjectRate {
	total := make(map[string]int)
	onTime := make(map[string]int)
	for _, r := range records {
		total[r.Subject]++
		if r.Status == models.StatusOnTime {
			onTime[r.Subject]++
		}
	}

	out := make([]SubjectRate, 0, len(total))
	for subject, n := range total {
		out = append(out, SubjectRate{Subject: subject, Total: n, PunctualityRate: rate(onTime[subject], n)})
	}
	slices.SortFunc(out, func(a, b SubjectRate) int { return cmp.Compare(a.Subject, b.Subject) })
	return out
}
