package wellness

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	json    []bool
}

func (f *fakeGenerator) generate(_ context.Context, prompt string, asJSON bool, _ int32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.json = append(f.json, asJSON)
	return f.reply, f.err
}

const validReport = `{
  "sleepHabits": "Irregular, about 6 hours",
  "exerciseFrequency": "light",
  "dietQuality": "fair",
  "stressLevel": "high",
  "workLifeBalance": "fair",
  "socialConnection": "moderate",
  "mentalHealthStatus": "fair",
  "timeManagement": "good",
  "financialWellness": "stable",
  "overallScore": 62,
  "strengths": ["Sticks to a budget"],
  "areasForImprovement": ["Sleep"],
  "recommendations": ["Fixed bedtime"],
  "riskFactors": ["Burnout"]
}`

func TestAssessDecodesFencedJSON(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "```json\n" + validReport + "\n```"}
	a := &GenAIAssessor{gen: gen}

	r, err := a.Assess(context.Background(), Responses{"sleepHours": 6, "stressLevel": "high"})
	require.NoError(t, err)
	require.Equal(t, "light", r.ExerciseFrequency)
	require.Equal(t, 62.0, r.OverallScore)
	require.Equal(t, []string{"Burnout"}, r.RiskFactors)
	require.Equal(t, "Fair", Band(r.OverallScore))

	require.Len(t, gen.prompts, 1)
	require.True(t, gen.json[0])
	require.Contains(t, gen.prompts[0], "sleep hours: 6\n")
	require.Contains(t, gen.prompts[0], "stress level: high\n")
}

func TestAssessRejectsInvalidReport(t *testing.T) {
	t.Parallel()

	bad := strings.Replace(validReport, `"light"`, `"daily"`, 1)
	a := &GenAIAssessor{gen: &fakeGenerator{reply: bad}}
	_, err := a.Assess(context.Background(), Responses{"sleepHours": 6})
	require.ErrorIs(t, err, ErrInvalidReport)

	a = &GenAIAssessor{gen: &fakeGenerator{reply: "not json"}}
	_, err = a.Assess(context.Background(), Responses{"sleepHours": 6})
	require.ErrorIs(t, err, ErrInvalidReport)

	outOfRange := strings.Replace(validReport, `62`, `140`, 1)
	a = &GenAIAssessor{gen: &fakeGenerator{reply: outOfRange}}
	_, err = a.Assess(context.Background(), Responses{"sleepHours": 6})
	require.ErrorIs(t, err, ErrInvalidReport)
}

func TestAssessEmptyResponses(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: validReport}
	_, err := (&GenAIAssessor{gen: gen}).Assess(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyResponses)
	require.Empty(t, gen.prompts)
}

func TestAssessPropagatesGeneratorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := (&GenAIAssessor{gen: &fakeGenerator{err: boom}}).Assess(context.Background(), Responses{"a": 1})
	require.ErrorIs(t, err, boom)
}

func TestUnconfiguredAssessor(t *testing.T) {
	t.Parallel()

	a := NewGenAIAssessor("  ", "")
	_, err := a.Assess(context.Background(), Responses{"sleepHours": 7})
	require.ErrorIs(t, err, ErrNotConfigured)
	_, err = a.Motivation(context.Background(), "sleep")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestInsightsAndMotivation(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "  Keep going.  \n"}
	a := &GenAIAssessor{gen: gen}

	text, err := a.Insights(context.Background(), Report{SleepHabits: "ok", OverallScore: 80})
	require.NoError(t, err)
	require.Equal(t, "Keep going.", text)
	require.False(t, gen.json[0])
	require.Contains(t, gen.prompts[0], `"overallScore": 80`)

	text, err = a.Motivation(context.Background(), "time management")
	require.NoError(t, err)
	require.Equal(t, "Keep going.", text)
	require.Contains(t, gen.prompts[1], `"time management"`)

	_, err = a.Motivation(context.Background(), " ")
	require.Error(t, err)
}

func TestBand(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Critical", Band(0))
	require.Equal(t, "Critical", Band(25))
	require.Equal(t, "Poor", Band(50))
	require.Equal(t, "Fair", Band(75))
	require.Equal(t, "Good", Band(76))
}

func TestCleanModelJSON(t *testing.T) {
	t.Parallel()

	require.Equal(t, `{"a":1}`, cleanModelJSON("```\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, cleanModelJSON("Here you go: {\"a\":1} thanks"))
	require.Equal(t, `{"a":1}`, cleanModelJSON(`{"a":1}`))
}
