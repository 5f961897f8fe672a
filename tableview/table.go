package tableview

// Column describes one table column. Value returns the raw field value used for
// sorting, selectors and display.
type Column[T any] struct {
	Name       string
	Title      string
	Money      bool
	Searchable bool
	Value      func(T) interface{}
}

// State is what a table request carries: search text, dropdown selections, the
// sort descriptor and the page window.
type State struct {
	Query     string
	Selectors map[string]string
	Sort      Sort
	Page      int
	PageSize  int
}

// SetPageSize changes the page size and keeps the current page; Apply clamps it
// against the new page count. Sizes above MaxPageSize are capped.
func (s *State) SetPageSize(size int) {
	s.PageSize = clampPageSize(size)
}

func clampPageSize(size int) int {
	switch {
	case size < 1:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	}
	return size
}

type Page[T any] struct {
	Items     []T
	Page      int
	PageSize  int
	PageCount int
	Total     int
	Sort      Sort
}

type Table[T any] struct {
	Columns []Column[T]
}

func (t Table[T]) Column(name string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column[T]{}, false
}

func (t Table[T]) searchFields(item T) []string {
	var out []string
	for _, c := range t.Columns {
		if c.Searchable {
			out = append(out, Stringify(c.Value(item)))
		}
	}
	return out
}

// Rows filters and sorts without paginating.
func (t Table[T]) Rows(items []T, st State) []T {
	out := Filter(items, st.Query, t.searchFields)

	if len(st.Selectors) > 0 {
		selected := make([]T, 0, len(out))
		for _, item := range out {
			if t.matchesSelectors(item, st.Selectors) {
				selected = append(selected, item)
			}
		}
		out = selected
	}

	if col, ok := t.Column(st.Sort.Column); ok {
		out = SortBy(out, st.Sort, col.Value)
	}

	return out
}

func (t Table[T]) matchesSelectors(item T, selectors map[string]string) bool {
	for name, selected := range selectors {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		if !MatchesSelector(selected, col.Value(item)) {
			return false
		}
	}
	return true
}

// Apply runs filter, sort and pagination, clamping the requested page.
func (t Table[T]) Apply(items []T, st State) Page[T] {
	st.PageSize = clampPageSize(st.PageSize)

	if _, ok := t.Column(st.Sort.Column); !ok {
		st.Sort = Sort{}
	} else if st.Sort.Direction != Desc {
		st.Sort.Direction = Asc
	}

	rows := t.Rows(items, st)
	count := PageCount(len(rows), st.PageSize)
	page := ClampPage(st.Page, count)

	return Page[T]{
		Items:     Paginate(rows, page, st.PageSize),
		Page:      page,
		PageSize:  st.PageSize,
		PageCount: count,
		Total:     len(rows),
		Sort:      st.Sort,
	}
}
