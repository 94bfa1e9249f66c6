package edupage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

// timeLayout is the PHP datetime format the backend uses everywhere.
const timeLayout = "2006-01-02 15:04:05"

// Notifications returns the timeline items embedded in the user page,
// what the bell icon in the web UI shows.
func (c *Client) Notifications(ctx context.Context) ([]schema.TimelineEvent, error) {
	items := c.visibleItems()
	if items == nil {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		items = c.visibleItems()
	}
	events := make([]schema.TimelineEvent, 0, len(items))
	for _, row := range items {
		events = append(events, parseTimelineItem(row))
	}
	return events, nil
}

// NotificationHistory fetches timeline items created since the given day.
// The embedded page only carries recent items; this endpoint reaches back.
func (c *Client) NotificationHistory(ctx context.Context, since time.Time) ([]schema.TimelineEvent, error) {
	form := url.Values{
		"datefrom": {since.Format("2006-01-02")},
		"dateto":   {time.Now().Format("2006-01-02")},
	}
	body, err := c.postForm(ctx, "/timeline/?akcia=getData", form)
	if err != nil {
		return nil, fmt.Errorf("fetch timeline history: %w", err)
	}

	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, result.Errorf(result.KindNotAuthenticated,
			"%s returned a non-JSON timeline, the session may have expired", c.subdomain)
	}

	events := make([]schema.TimelineEvent, 0, len(payload.Items))
	for _, row := range payload.Items {
		events = append(events, parseTimelineItem(row))
	}
	return events, nil
}

// SendMessage posts a plain message to the given recipients' timelines.
func (c *Client) SendMessage(ctx context.Context, recipients []schema.Person, body string) error {
	if len(recipients) == 0 {
		return result.Errorf(result.KindInvalidQuery, "no recipients")
	}
	if body == "" {
		return result.Errorf(result.KindInvalidQuery, "empty message body")
	}

	selected := make([]string, len(recipients))
	for i, r := range recipients {
		selected[i] = recipientID(r)
	}
	users, err := json.Marshal(selected)
	if err != nil {
		return err
	}

	form := url.Values{
		"selectedUser": {string(users)},
		"text":         {body},
		"typ":          {"sprava"},
		"attachements": {"{}"},
	}
	resp, err := c.postForm(ctx, "/timeline/?akcia=createItem", form)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp, &status); err == nil && status.Status != "" && status.Status != "ok" {
		return fmt.Errorf("send message: backend status %q", status.Status)
	}
	return nil
}

// recipientID renders a Person in the address format the timeline endpoint
// expects.
func recipientID(p schema.Person) string {
	switch p.Role {
	case schema.RoleTeacher:
		return fmt.Sprintf("Ucitel%d", p.PersonID)
	default:
		return fmt.Sprintf("Student%d", p.PersonID)
	}
}

// parseTimelineItem maps one raw timeline row onto the lean event record.
func parseTimelineItem(row map[string]any) schema.TimelineEvent {
	status := schema.StatusActive
	if asBool(row["vybavene"]) || asBool(row["done"]) {
		status = schema.StatusDone
	}

	ev := schema.TimelineEvent{
		EventID:   asString(row["timelineid"]),
		Type:      asString(row["typ"]),
		Timestamp: parseTime(asString(row["timestamp"])),
		Text:      asString(row["text"]),
		Author:    asString(row["vlastnik_meno"]),
		Status:    status,
		Starred:   asBool(row["starred"]) || asBool(row["oblubene"]),
		Removed:   asBool(row["removed"]),
		CreatedAt: parseTime(asString(row["cas_pridania"])),
		Data:      payloadData(row["data"]),
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = ev.CreatedAt
	}
	return ev
}

// payloadData decodes the per-type payload, which arrives either as a JSON
// object or as a doubly encoded JSON string.
func payloadData(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		if t == "" {
			return nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return nil
		}
		return m
	default:
		return nil
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{timeLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
