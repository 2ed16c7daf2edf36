// Package categorize suggests an expense category from a free-text
// description using case-insensitive keyword matching.
package categorize

import (
	"fmt"
	"strings"
)

// Other is returned when no keyword of any category matches.
const Other = "Other"

// MinDescriptionLength is the shortest trimmed description worth suggesting for.
// Callers filter with ShouldSuggest; Suggest itself accepts any input.
const MinDescriptionLength = 3

// fullConfidenceMatches is the keyword count at which confidence reaches 100.
const fullConfidenceMatches = 3

// Suggestion is the best-guess category for a description.
type Suggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

type keywordSet struct {
	category string
	keywords []string
}

// taxonomy is ordered: earlier categories win ties.
var taxonomy = []keywordSet{
	{"Food", []string{"burger", "pizza", "restaurant", "cafe", "coffee", "lunch", "dinner", "breakfast", "grocery", "supermarket", "market", "food", "eat", "meal", "bakery", "fastfood", "grill"}},
	{"Transport", []string{"taxi", "uber", "bus", "train", "gas", "parking", "fuel", "carpool", "metro", "jeepney", "tricycle", "drive", "transport", "travel", "ticket"}},
	{"Entertainment", []string{"movie", "cinema", "game", "gaming", "concert", "show", "netflix", "spotify", "entertainment", "ticket", "event", "play", "fun", "party"}},
	{"Supplies", []string{"pen", "paper", "notebook", "book", "supplies", "office", "stationery", "printing", "material", "equipment", "tool"}},
	{"Healthcare", []string{"doctor", "hospital", "pharmacy", "medicine", "drug", "health", "clinic", "dental", "medical", "treatment"}},
	{"Clothing", []string{"shirt", "pants", "dress", "shoes", "clothing", "apparel", "fashion", "mall", "boutique", "wear", "garment"}},
}

// Categories returns the expense taxonomy in declaration order, followed by Other.
func Categories() []string {
	out := make([]string, 0, len(taxonomy)+1)
	for _, ks := range taxonomy {
		out = append(out, ks.category)
	}
	return append(out, Other)
}

// Keywords returns a copy of the keywords for category, or nil if unknown.
func Keywords(category string) []string {
	for _, ks := range taxonomy {
		if ks.category == category {
			return append([]string(nil), ks.keywords...)
		}
	}
	return nil
}

// ShouldSuggest reports whether description is long enough to be worth a suggestion.
func ShouldSuggest(description string) bool {
	return len([]rune(strings.TrimSpace(description))) >= MinDescriptionLength
}

// Suggest returns the category whose keywords occur most often as substrings
// of description. Each keyword counts once no matter how often it occurs.
func Suggest(description string) Suggestion {
	desc := strings.ToLower(description)

	best, bestCount := "", 0
	for _, ks := range taxonomy {
		n := 0
		for _, kw := range ks.keywords {
			if strings.Contains(desc, kw) {
				n++
			}
		}
		// strict comparison keeps the earlier category on ties
		if n > bestCount {
			best, bestCount = ks.category, n
		}
	}

	if bestCount == 0 {
		return Suggestion{
			Category:   Other,
			Confidence: 0,
			Reason:     "No matching keywords found",
		}
	}

	return Suggestion{
		Category:   best,
		Confidence: confidence(bestCount),
		Reason:     fmt.Sprintf("Matched keywords in %q category", best),
	}
}

func confidence(matches int) float64 {
	c := float64(matches) / fullConfidenceMatches * 100
	if c > 100 {
		return 100
	}
	return c
}
