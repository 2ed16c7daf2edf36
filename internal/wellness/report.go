// Package wellness produces the student lifestyle assessment. The reasoning is
// delegated to a hosted language model; this package builds the prompts and
// validates the structured report that comes back.
package wellness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	// ErrNotConfigured is returned when no model credentials are available.
	ErrNotConfigured = errors.New("wellness: assessment model not configured")

	// ErrInvalidReport wraps schema violations in a model response.
	ErrInvalidReport = errors.New("wellness: invalid assessment report")

	// ErrEmptyResponses is returned when there is nothing to assess.
	ErrEmptyResponses = errors.New("wellness: no questionnaire responses")
)

// Responses are the questionnaire answers keyed by camelCase field name.
type Responses map[string]any

// Assessor is the external model-serving collaborator.
type Assessor interface {
	Assess(ctx context.Context, responses Responses) (Report, error)
	Insights(ctx context.Context, report Report) (string, error)
	Motivation(ctx context.Context, area string) (string, error)
}

var (
	exerciseLevels  = []string{"sedentary", "light", "moderate", "active", "very_active"}
	qualityLevels   = []string{"poor", "fair", "good", "excellent"}
	stressLevels    = []string{"low", "moderate", "high", "very_high"}
	socialLevels    = []string{"isolated", "limited", "moderate", "strong"}
	mentalLevels    = []string{"struggling", "fair", "good", "excellent"}
	financialLevels = []string{"struggling", "fair", "stable", "thriving"}
)

// Report is the structured lifestyle assessment
type Report struct {
	SleepHabits         string   `json:"sleepHabits"`
	ExerciseFrequency   string   `json:"exerciseFrequency"`
	DietQuality         string   `json:"dietQuality"`
	StressLevel         string   `json:"stressLevel"`
	WorkLifeBalance     string   `json:"workLifeBalance"`
	SocialConnection    string   `json:"socialConnection"`
	MentalHealthStatus  string   `json:"mentalHealthStatus"`
	TimeManagement      string   `json:"timeManagement"`
	FinancialWellness   string   `json:"financialWellness"`
	OverallScore        float64  `json:"overallScore"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Recommendations     []string `json:"recommendations"`
	RiskFactors         []string `json:"riskFactors"`
}

// Validate enforces the enumerations and score range of the report schema.
func (r Report) Validate() error {
	checks := []struct {
		field string
		value string
		allow []string
	}{
		{"exerciseFrequency", r.ExerciseFrequency, exerciseLevels},
		{"dietQuality", r.DietQuality, qualityLevels},
		{"stressLevel", r.StressLevel, stressLevels},
		{"workLifeBalance", r.WorkLifeBalance, qualityLevels},
		{"socialConnection", r.SocialConnection, socialLevels},
		{"mentalHealthStatus", r.MentalHealthStatus, mentalLevels},
		{"timeManagement", r.TimeManagement, qualityLevels},
		{"financialWellness", r.FinancialWellness, financialLevels},
	}
	for _, c := range checks {
		if !slices.Contains(c.allow, c.value) {
			return fmt.Errorf("%w: %s %q not one of %v", ErrInvalidReport, c.field, c.value, c.allow)
		}
	}
	if r.SleepHabits == "" {
		return fmt.Errorf("%w: sleepHabits is empty", ErrInvalidReport)
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("%w: overallScore %v outside 0-100", ErrInvalidReport, r.OverallScore)
	}
	return nil
}

// Band names the wellness range a score falls in.
func Band(score float64) string {
	switch {
	case score <= 25:
		return "Critical"
	case score <= 50:
		return "Poor"
	case score <= 75:
		return "Fair"
	default:
		return "Good"
	}
}

// AssessmentRecord is a saved assessment
type AssessmentRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"date"`
	Report    Report    `json:"assessment"`
}
