package tools

import (
	"time"

	"github.com/edubridge/edubridge/internal/result"
)

// MCP arguments arrive as loosely typed JSON; numbers are always float64
// and booleans sometimes come as "true"/"yes" strings depending on the
// client. These helpers coerce without failing on absence.

func strArg(params map[string]any, key, def string) string {
	if s, ok := params[key].(string); ok && s != "" {
		return s
	}
	return def
}

func intArg(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func boolArg(params map[string]any, key string, def bool) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		switch v {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return def
}

// triBoolArg reads a yes/no/unset argument. Unset means "don't filter".
func triBoolArg(params map[string]any, key string) (*bool, error) {
	s, ok := params[key].(string)
	if !ok || s == "" {
		if b, isBool := params[key].(bool); isBool {
			return &b, nil
		}
		return nil, nil
	}
	switch s {
	case "yes", "true", "1":
		yes := true
		return &yes, nil
	case "no", "false", "0":
		no := false
		return &no, nil
	default:
		return nil, result.Errorf(result.KindInvalidQuery,
			"%s must be \"yes\", \"no\" or empty, got %q", key, s)
	}
}

// dateArg parses an optional YYYY-MM-DD argument. Absence is the zero time.
func dateArg(params map[string]any, key string) (time.Time, error) {
	s, ok := params[key].(string)
	if !ok || s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, result.Errorf(result.KindInvalidQuery,
			"%s must be a YYYY-MM-DD date, got %q", key, s)
	}
	return t, nil
}
