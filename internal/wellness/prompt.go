package wellness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// humanizeKey turns "sleepHours" into "sleep hours".
func humanizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// BuildAssessmentPrompt renders the questionnaire answers, one per line in key order.
func BuildAssessmentPrompt(responses Responses) string {
	keys := make([]string, 0, len(responses))
	for k := range responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var answers strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&answers, "%s: %v\n", humanizeKey(k), responses[k])
	}

	return "You are an expert wellness coach and student lifestyle counselor. Based on the following student responses,\n" +
		"provide a comprehensive lifestyle assessment:\n\n" +
		answers.String() + "\n" +
		"Please analyze:\n" +
		"1. Sleep quality and patterns\n" +
		"2. Physical activity levels\n" +
		"3. Diet and nutrition habits\n" +
		"4. Stress management\n" +
		"5. Academic-work balance\n" +
		"6. Social connections\n" +
		"7. Mental health status\n" +
		"8. Time management skills\n" +
		"9. Financial wellness\n\n" +
		"Provide specific, actionable recommendations tailored to student life.\n" +
		"Include an overall wellness score (0-100) where:\n" +
		"- 0-25: Critical - immediate attention needed\n" +
		"- 26-50: Poor - significant improvements needed\n" +
		"- 51-75: Fair - some areas need work\n" +
		"- 76-100: Good - healthy lifestyle maintained\n\n" +
		reportSchemaPrompt
}

const reportSchemaPrompt = "Output STRICT JSON only, a single object with these fields:\n" +
	"- \"sleepHabits\": string\n" +
	"- \"exerciseFrequency\": one of sedentary, light, moderate, active, very_active\n" +
	"- \"dietQuality\": one of poor, fair, good, excellent\n" +
	"- \"stressLevel\": one of low, moderate, high, very_high\n" +
	"- \"workLifeBalance\": one of poor, fair, good, excellent\n" +
	"- \"socialConnection\": one of isolated, limited, moderate, strong\n" +
	"- \"mentalHealthStatus\": one of struggling, fair, good, excellent\n" +
	"- \"timeManagement\": one of poor, fair, good, excellent\n" +
	"- \"financialWellness\": one of struggling, fair, stable, thriving\n" +
	"- \"overallScore\": number between 0 and 100\n" +
	"- \"strengths\", \"areasForImprovement\", \"recommendations\", \"riskFactors\": arrays of strings\n" +
	"Do NOT wrap the response in code fences.\n"

// BuildInsightsPrompt asks for a short motivational summary of report.
func BuildInsightsPrompt(report Report) (string, error) {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("BuildInsightsPrompt: marshal report: %w", err)
	}
	return "Based on this lifestyle assessment:\n" + string(raw) + "\n\n" +
		"Generate a brief, motivational summary (2-3 paragraphs) that:\n" +
		"1. Acknowledges the student's current situation\n" +
		"2. Highlights their progress and strengths\n" +
		"3. Provides hope and actionable next steps\n" +
		"4. Emphasizes the connection between lifestyle choices and academic/financial success\n", nil
}

// BuildMotivationPrompt asks for encouragement on one improvement area.
func BuildMotivationPrompt(area string) string {
	return fmt.Sprintf("Generate a personalized, motivational message for a student who needs to improve in the area of: %q\n\n", area) +
		"The message should:\n" +
		"1. Be empathetic and understanding\n" +
		"2. Provide 3-5 specific, actionable tips\n" +
		"3. Include realistic quick wins (things they can do today/this week)\n" +
		"4. Connect the improvement to their overall success as a student\n\n" +
		"Keep it concise and encouraging.\n"
}

// cleanModelJSON strips Markdown fences and any text around the outer object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
