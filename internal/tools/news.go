package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/schema"
)

// NewsTool lists the school's announcements.
type NewsTool struct {
	*base
}

func (t *NewsTool) Name() string { return "get_news" }
func (t *NewsTool) Description() string {
	return "Get the school's news and announcements, with linked articles expanded to readable text."
}
func (t *NewsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *NewsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_news", params,
		func(ctx context.Context, s schema.Session) ([]schema.NewsItem, error) {
			return s.News(ctx)
		}, tagNews)
}
