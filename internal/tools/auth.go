package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/edubridge/edubridge/internal/result"
)

// LoginTool authenticates against one school and registers the session.
// Credentials default to the EDUPAGE_* environment variables, so an MCP
// client normally calls this with no arguments at all.
type LoginTool struct {
	*base
	login LoginFunc
}

func (t *LoginTool) Name() string { return "login" }
func (t *LoginTool) Description() string {
	return "Log in to a school. Uses EDUPAGE_SUBDOMAIN, EDUPAGE_USERNAME and EDUPAGE_PASSWORD when arguments are omitted. Call once per school to work with several at the same time."
}

func (t *LoginTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"subdomain": {
				"type": "string",
				"description": "School subdomain, e.g. \"gymba\" for gymba.edupage.org"
			},
			"username": {
				"type": "string",
				"description": "Account username (defaults to EDUPAGE_USERNAME)"
			},
			"password": {
				"type": "string",
				"description": "Account password (defaults to EDUPAGE_PASSWORD)"
			}
		}
	}`)
}

func (t *LoginTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("login", func() (any, error) {
		subdomain := strArg(params, "subdomain", os.Getenv("EDUPAGE_SUBDOMAIN"))
		username := strArg(params, "username", os.Getenv("EDUPAGE_USERNAME"))
		password := strArg(params, "password", os.Getenv("EDUPAGE_PASSWORD"))
		if subdomain == "" {
			return nil, result.Errorf(result.KindInvalidQuery,
				"no subdomain given and EDUPAGE_SUBDOMAIN is not set")
		}

		sess, err := t.login(ctx, subdomain, username, password)
		if err != nil {
			return nil, err
		}
		if err := t.sessions.Register(subdomain, sess); err != nil {
			return nil, err
		}
		return result.Object(map[string]any{
			"message": fmt.Sprintf("logged in to %s", subdomain),
			"school":  subdomain,
			"schools": t.sessions.Schools(),
		}), nil
	})
}

// ListSchoolsTool reports which schools are currently logged in.
type ListSchoolsTool struct {
	*base
}

func (t *ListSchoolsTool) Name() string { return "list_schools" }
func (t *ListSchoolsTool) Description() string {
	return "List the schools this server is currently logged in to. Their names are what the 'school' argument of every other tool accepts."
}

func (t *ListSchoolsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *ListSchoolsTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return t.classify.Run("list_schools", func() (any, error) {
		schools := t.sessions.Schools()
		return result.Object(map[string]any{
			"count":   len(schools),
			"schools": schools,
		}), nil
	})
}
