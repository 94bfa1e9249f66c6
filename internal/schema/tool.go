// Package schema contains the core contracts shared across edubridge packages:
// the lean school-domain records, the Session capability every backend handle
// must provide, and the Tool interface the MCP server exposes. Concrete
// implementations live in their respective packages; this package is the
// single canonical source of truth for every shared definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all MCP-callable tools must satisfy.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}
