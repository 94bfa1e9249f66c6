package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edubridge/edubridge/internal/resolve"
	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
)

// SendMessageTool posts a message to a teacher's or student's timeline.
type SendMessageTool struct {
	*base
}

func (t *SendMessageTool) Name() string { return "send_message" }
func (t *SendMessageTool) Description() string {
	return "Send a message to one or more teachers or students. Recipients are resolved by name, so a partial name works when it is unambiguous."
}

func (t *SendMessageTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"recipient": {
				"type": "string",
				"description": "Recipient name(s), comma-separated, e.g. \"Anna Vargova\" or \"Vargova, Kovac\""
			},
			"recipient_type": {
				"type": "string",
				"enum": ["teacher", "student"],
				"description": "Whether the recipients are teachers (default) or students"
			},
			"body": {
				"type": "string",
				"description": "Message text"
			},
			"school": {
				"type": "string",
				"description": "School subdomain when logged in to several"
			}
		},
		"required": ["recipient", "body"]
	}`)
}

func (t *SendMessageTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("send_message", func() (any, error) {
		body := strArg(params, "body", "")
		if body == "" {
			return nil, result.Errorf(result.KindInvalidQuery, "empty message body")
		}
		sess, err := t.sessions.Get(strArg(params, "school", ""))
		if err != nil {
			return nil, err
		}

		names := stringutils.SplitCSV(strArg(params, "recipient", ""))
		if len(names) == 0 {
			return nil, result.Errorf(result.KindInvalidQuery, "no recipient given")
		}
		asStudent := strArg(params, "recipient_type", "teacher") == "student"

		recipients := make([]schema.Person, 0, len(names))
		for _, name := range names {
			if asStudent {
				student, err := resolve.Student(ctx, sess, name)
				if err != nil {
					return nil, err
				}
				recipients = append(recipients, schema.Person{PersonID: student.PersonID, Name: student.Name, Role: schema.RoleStudent})
				continue
			}
			teacher, err := resolve.Teacher(ctx, sess, name)
			if err != nil {
				return nil, err
			}
			recipients = append(recipients, schema.Person{PersonID: teacher.PersonID, Name: teacher.Name, Role: schema.RoleTeacher})
		}

		if err := sess.SendMessage(ctx, recipients, body); err != nil {
			return nil, err
		}
		sent := make([]string, len(recipients))
		for i, r := range recipients {
			sent[i] = r.Name
		}
		return result.Object(map[string]any{
			"message":    fmt.Sprintf("message sent to %s", strings.Join(sent, ", ")),
			"recipients": recipients,
			"school":     sess.School(),
		}), nil
	})
}
