package edupage

import (
	"sort"
	"strconv"
	"strings"
)

// The embedded JSON is produced by PHP and is loose about types: IDs and
// flags arrive as strings, numbers or booleans depending on the school's
// configuration. These helpers normalize without failing.

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(strings.Replace(strings.TrimSpace(t), ",", ".", 1), 64)
		return f
	}
	return 0
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t == "1" || strings.EqualFold(t, "true") || strings.EqualFold(t, "yes")
	}
	return false
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asStrings flattens a JSON array into its string forms, dropping empties.
func asStrings(v any) []string {
	var out []string
	for _, item := range asSlice(v) {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// tableRows returns a dbi table's rows in a stable order. Tables arrive
// either as an id-keyed object or as a plain array.
func tableRows(table any) []map[string]any {
	switch t := table.(type) {
	case []any:
		var rows []map[string]any
		for _, v := range t {
			if m := asMap(v); m != nil {
				rows = append(rows, m)
			}
		}
		return rows
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
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
		rows := make([]map[string]any, 0, len(keys))
		for _, k := range keys {
			if m := asMap(t[k]); m != nil {
				rows = append(rows, m)
			}
		}
		return rows
	default:
		return nil
	}
}

// fullName joins the PHP-style firstname/lastname pair.
func fullName(row map[string]any) string {
	first := asString(row["firstname"])
	last := asString(row["lastname"])
	return strings.TrimSpace(first + " " + last)
}
