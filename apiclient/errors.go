package apiclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrMalformedResponse = errors.New("malformed-response")
	ErrRejected          = errors.New("upstream-rejected-request")
)

// Error is a non-2xx upstream answer, or a 2xx one whose body flags a failure.
type Error struct {
	Status  int
	Message string
	Errors  map[string]interface{}
}

// Error joins the field errors sorted by field, or falls back to the message.
func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		keys := make([]string, 0, len(e.Errors))
		for k := range e.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, flatten(e.Errors[k])...)
		}
		return strings.Join(parts, ", ")
	}

	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("upstream-status-%d", e.Status)
}

func (e *Error) Is(target error) bool {
	return target == ErrRejected
}

// flatten handles the `{"field": ["msg", ...]}` and `{"field": "msg"}` shapes.
func flatten(v interface{}) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return []string{x}
	case []interface{}:
		var out []string
		for _, item := range x {
			out = append(out, flatten(item)...)
		}
		return out
	default:
		return []string{fmt.Sprint(x)}
	}
}
