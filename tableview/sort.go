package tableview

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection defaults to ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort is the {column, direction} descriptor driven by header clicks.
type Sort struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Toggle is a click on column's header: the active column flips, any other
// column starts ascending.
func (s Sort) Toggle(column string) Sort {
	if s.Column == column {
		if s.Direction == Asc {
			return Sort{Column: column, Direction: Desc}
		}
		return Sort{Column: column, Direction: Asc}
	}
	return Sort{Column: column, Direction: Asc}
}

// Compare orders two raw field values. Values of different kinds compare by
// their string form. Ties return 0.
func Compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmpFloat(fa, fb)
		}
	}

	switch x := a.(type) {
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			switch {
			case x.Before(y):
				return -1
			case x.After(y):
				return 1
			}
			return 0
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}

	return strings.Compare(Stringify(a), Stringify(b))
}

// SortBy returns a sorted copy of items; the source is left untouched.
func SortBy[T any](items []T, s Sort, value func(T) interface{}) []T {
	out := make([]T, len(items))
	copy(out, items)

	if value == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(value(out[i]), value(out[j]))
		if s.Direction == Desc {
			return c > 0
		}
		return c < 0
	})

	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
