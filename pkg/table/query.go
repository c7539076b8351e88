package table

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	qs "github.com/derekstavis/go-qs"
)

// Query parameter names used by EncodeQuery and DecodeQuery.
const (
	QuerySort = "sort"
	QueryHide = "hide"
)

const (
	listSeparator = ","
	sortSeparator = ":"
)

// keyEscaper percent-encodes the separators (and the escape character itself)
// inside column keys of the flat query form.
var keyEscaper = strings.NewReplacer("%", "%25", listSeparator, "%2C", sortSeparator, "%3A")

func unescapeKey(raw string) string {
	if !strings.Contains(raw, "%") {
		return raw
	}
	key, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return key
}

// DecodeQuery reads table state from a raw URL query. Two shapes are
// understood:
//
//	sort=score:asc,name:desc&hide=email,notes
//	order[0][column]=score&order[0][dir]=asc&hide[]=email
//
// In the second form column may also be a column index into keys. Keys that
// are not in keys are dropped so stale links degrade to the default view. An
// absent hide parameter yields a nil hidden set.
func DecodeQuery(rawQuery string, keys []string) (State, error) {
	var state State
	if strings.TrimSpace(rawQuery) == "" {
		return state, nil
	}

	values, err := qs.Unmarshal(rawQuery)
	if err != nil {
		return state, fmt.Errorf("table: decode query: %w", err)
	}

	known := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		known[key] = struct{}{}
	}
	accept := func(key string) bool {
		if keys == nil {
			return key != ""
		}
		_, ok := known[key]
		return ok
	}

	seen := make(map[string]struct{})
	addSort := func(key string, dir Direction) {
		if !accept(key) || dir == Unsorted {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		state.Sort = append(state.Sort, SortKey{Key: key, Dir: dir})
	}

	for _, item := range stringList(values[QuerySort]) {
		key, rawDir, found := strings.Cut(item, sortSeparator)
		dir := Ascending
		if found {
			parsed, ok := ParseDirection(rawDir)
			if !ok {
				continue
			}
			dir = parsed
		}
		addSort(unescapeKey(strings.TrimSpace(key)), dir)
	}

	for _, entry := range orderEntries(values["order"]) {
		key := stringValue(entry["column"])
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(keys) {
			key = keys[idx]
		}
		dir, ok := ParseDirection(stringValue(entry["dir"]))
		if !ok {
			continue
		}
		addSort(key, dir)
	}

	if raw, present := values[QueryHide]; present {
		state.Hidden = []string{}
		for _, key := range stringList(raw) {
			if key = unescapeKey(key); accept(key) {
				state.Hidden = append(state.Hidden, key)
			}
		}
		state.Hidden = normalizeHidden(state.Hidden)
	}

	return state, nil
}

// EncodeQuery renders state in the flat query form read by DecodeQuery.
func EncodeQuery(state State) url.Values {
	values := url.Values{}
	if len(state.Sort) > 0 {
		parts := make([]string, 0, len(state.Sort))
		for _, sk := range state.Sort {
			parts = append(parts, keyEscaper.Replace(sk.Key)+sortSeparator+string(sk.Dir))
		}
		values.Set(QuerySort, strings.Join(parts, listSeparator))
	}
	if state.Hidden != nil {
		hidden := normalizeHidden(state.Hidden)
		for i, key := range hidden {
			hidden[i] = keyEscaper.Replace(key)
		}
		values.Set(QueryHide, strings.Join(hidden, listSeparator))
	}
	return values
}

// QueryFor is a convenience for link builders: it applies toggle to state and
// returns the encoded query, or the current query when toggle fails.
func QueryFor(state State, key string, toggle func(State, string) (State, error)) string {
	next, err := toggle(state, key)
	if err != nil {
		return EncodeQuery(state).Encode()
	}
	return EncodeQuery(next).Encode()
}

func stringList(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, listSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []interface{}:
		for _, item := range v {
			out = append(out, stringList(item)...)
		}
	case map[string]interface{}:
		for _, k := range sortedIndexKeys(v) {
			out = append(out, stringList(v[k])...)
		}
	}
	return out
}

func orderEntries(raw any) []map[string]interface{} {
	var out []map[string]interface{}
	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if entry, ok := item.(map[string]interface{}); ok {
				out = append(out, entry)
			}
		}
	case map[string]interface{}:
		for _, k := range sortedIndexKeys(v) {
			if entry, ok := v[k].(map[string]interface{}); ok {
				out = append(out, entry)
			}
		}
	}
	return out
}

// sortedIndexKeys orders "0","1","10" numerically, falling back to text.
func sortedIndexKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

func stringValue(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
