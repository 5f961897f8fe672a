package tableview

import (
	"fmt"
	"strings"
)

// Matches reports whether the trimmed, lowercased query is a substring of at
// least one value. An empty query matches everything.
func Matches(query string, values ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, v := range values {
		if strings.Contains(strings.ToLower(strings.TrimSpace(v)), q) {
			return true
		}
	}

	return false
}

// Filter returns the items whose fields match query. The source slice is never
// modified; an empty query returns it as is.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(query, fields(item)...) {
			out = append(out, item)
		}
	}

	return out
}

// SelectorAll disables a dropdown selector.
const SelectorAll = "all"

// MatchesSelector is the exact, case-insensitive match used by the year, month
// and account dropdowns.
func MatchesSelector(selected string, value interface{}) bool {
	selected = strings.TrimSpace(selected)
	if selected == "" || strings.EqualFold(selected, SelectorAll) {
		return true
	}

	return strings.EqualFold(selected, strings.TrimSpace(Stringify(value)))
}

// Stringify coerces a field value the way the table cells display it.
func Stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
