package edupage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
)

// News returns the school's announcements: news items from the timeline,
// each expanded with readable article text when the item links somewhere.
func (c *Client) News(ctx context.Context) ([]schema.NewsItem, error) {
	events, err := c.Notifications(ctx)
	if err != nil {
		return nil, err
	}

	var items []schema.NewsItem
	for _, e := range events {
		if e.Type != "news" || e.Removed {
			continue
		}
		item := schema.NewsItem{
			Title: asString(e.Data["nadpis"]),
			Text:  stringutils.CollapseSpace(e.Text),
			URL:   newsLink(e.Data),
		}
		if !e.Timestamp.IsZero() {
			item.Date = e.Timestamp.Format(dateLayout)
		}
		if item.URL != "" {
			if article := c.readArticle(ctx, item.URL); article != "" {
				item.Text = article
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// readArticle fetches a linked page and extracts its readable text. A
// failure here only loses the expansion, never the news item, so errors
// are swallowed.
func (c *Client) readArticle(ctx context.Context, rawURL string) string {
	body, err := c.getAbsolute(ctx, rawURL)
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return ""
	}
	return stringutils.Truncate(stringutils.CollapseSpace(article.TextContent), 5000)
}

// getAbsolute fetches a URL that may be relative to the school's host.
func (c *Client) getAbsolute(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "/") {
		return c.get(ctx, rawURL)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if !strings.HasSuffix(parsed.Host, ".edupage.org") {
		return nil, fmt.Errorf("refusing to fetch off-site link %s", parsed.Host)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return c.do(req)
}

func newsLink(data map[string]any) string {
	for _, key := range []string{"url", "linkHtml", "link"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
