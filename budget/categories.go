// Package budget keeps a small personal ledger of expenses and incomes and
// categorizes expenses from their free-text description.
package budget

import "strings"

// DefaultCategory is assigned when no keyword matches a description.
const DefaultCategory = "Other"

// Categories lists every expense category, in presentation order.
var Categories = []string{
	"Food & Dining",
	"Groceries",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	DefaultCategory,
}

var categoryKeywords = map[string][]string{
	"Food & Dining":     {"restaurant", "lunch", "dinner", "breakfast", "coffee", "cafe", "pizza", "takeout", "food delivery"},
	"Groceries":         {"grocery", "groceries", "supermarket", "market", "produce"},
	"Transportation":    {"taxi", "uber", "grab", "bus", "train", "fuel", "gas", "parking", "metro"},
	"Shopping":          {"clothes", "shoes", "amazon", "mall", "electronics", "furniture"},
	"Entertainment":     {"movie", "cinema", "concert", "game", "netflix", "spotify", "streaming"},
	"Bills & Utilities": {"electricity", "water bill", "internet", "phone bill", "rent", "utility", "subscription"},
	"Healthcare":        {"doctor", "pharmacy", "hospital", "medicine", "dentist", "clinic"},
	"Travel":            {"flight", "hotel", "airbnb", "vacation", "trip", "airline"},
	"Education":         {"book", "course", "tuition", "class", "workshop"},
}

// DetectCategory scores each category by its keyword matches against the
// description and returns the best one. Longer keywords score higher so
// "food delivery" beats "food". Falls back to DefaultCategory.
func DetectCategory(description string) string {
	if description == "" {
		return DefaultCategory
	}
	lower := strings.ToLower(description)

	best := DefaultCategory
	bestScore := 0
	for _, category := range Categories {
		score := 0
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				score += len(strings.Fields(keyword))
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best
}
