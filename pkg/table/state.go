package table

import (
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Unsorted   Direction = ""
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts asc/desc in any case and reports unknown values.
func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Unsorted, false
	}
}

// SortKey pairs a column key with a direction.
type SortKey struct {
	Key string    `json:"key" yaml:"key"`
	Dir Direction `json:"dir" yaml:"dir"`
}

// SortState is the ordered list of active sort keys. Earlier keys take
// precedence. An empty state means the base row order.
type SortState []SortKey

// Direction returns the direction for key, or Unsorted.
func (s SortState) Direction(key string) Direction {
	for _, sk := range s {
		if sk.Key == key {
			return sk.Dir
		}
	}
	return Unsorted
}

// Position returns the 1-based precedence of key, or 0 when not sorted.
func (s SortState) Position(key string) int {
	for i, sk := range s {
		if sk.Key == key {
			return i + 1
		}
	}
	return 0
}

// State is the caller-owned interaction state of a table.
type State struct {
	Sort SortState `json:"sort,omitempty" yaml:"sort,omitempty"`
	// Hidden lists the hidden column keys, sorted. A nil slice defers to the
	// columns' Hidden flags; an empty non-nil slice shows every column.
	Hidden []string `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// IsHidden reports whether key is in the hidden set. The set need not be
// sorted.
func (s State) IsHidden(key string) bool {
	return slices.Contains(s.Hidden, key)
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s State) Clone() State {
	out := State{Sort: slices.Clone(s.Sort)}
	if s.Hidden != nil {
		out.Hidden = slices.Clone(s.Hidden)
	}
	return out
}

func next(dir Direction) Direction {
	switch dir {
	case Unsorted:
		return Ascending
	case Ascending:
		return Descending
	default:
		return Unsorted
	}
}

// ToggleSort advances key through unsorted -> asc -> desc -> unsorted and
// drops every other sort key.
func ToggleSort(state State, key string) (State, error) {
	if strings.TrimSpace(key) == "" {
		return state, configError(ErrEmptyColumnKey, key, -1)
	}
	out := state.Clone()
	dir := next(state.Sort.Direction(key))
	if dir == Unsorted {
		out.Sort = nil
		return out, nil
	}
	out.Sort = SortState{{Key: key, Dir: dir}}
	return out, nil
}

// ToggleSortMulti advances key through the same cycle while keeping the other
// sort keys. A newly sorted key is appended with the lowest precedence and a
// removed key leaves the remaining order intact.
func ToggleSortMulti(state State, key string) (State, error) {
	if strings.TrimSpace(key) == "" {
		return state, configError(ErrEmptyColumnKey, key, -1)
	}
	out := state.Clone()
	pos := state.Sort.Position(key)
	if pos == 0 {
		out.Sort = append(out.Sort, SortKey{Key: key, Dir: Ascending})
		return out, nil
	}

	dir := next(state.Sort[pos-1].Dir)
	if dir == Unsorted {
		out.Sort = slices.Delete(out.Sort, pos-1, pos)
		if len(out.Sort) == 0 {
			out.Sort = nil
		}
		return out, nil
	}
	out.Sort[pos-1].Dir = dir
	return out, nil
}

// ToggleVisibility flips key's membership in the hidden set. A nil hidden set
// is first resolved from the columns' Hidden flags, so toggling the same key
// twice always restores the visible columns.
func ToggleVisibility[T any](state State, columns []Column[T], key string) (State, error) {
	if strings.TrimSpace(key) == "" {
		return state, configError(ErrEmptyColumnKey, key, -1)
	}
	if !slices.ContainsFunc(columns, func(col Column[T]) bool { return strings.TrimSpace(col.Key) == key }) {
		return state, configError(ErrUnknownColumn, key, -1)
	}
	out := state.Clone()
	if out.Hidden == nil {
		out.Hidden = DefaultHidden(columns)
	} else {
		out.Hidden = normalizeHidden(out.Hidden)
	}
	if idx, found := slices.BinarySearch(out.Hidden, key); found {
		out.Hidden = slices.Delete(out.Hidden, idx, idx+1)
	} else {
		out.Hidden = slices.Insert(out.Hidden, idx, key)
	}
	return out, nil
}

// DefaultHidden returns the sorted keys of the columns declared Hidden. The
// result is never nil.
func DefaultHidden[T any](columns []Column[T]) []string {
	hidden := []string{}
	for _, col := range columns {
		if col.Hidden {
			hidden = append(hidden, strings.TrimSpace(col.Key))
		}
	}
	return normalizeHidden(hidden)
}

func normalizeHidden(keys []string) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
