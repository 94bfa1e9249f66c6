package edupage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

var reGradesViewer = regexp.MustCompile(`(?s)\.znamkyStudentViewer\((.+?)\);`)

// Grades fetches the grade book for a term ("P1", "P2" or "" for the
// whole year) of the given school year (0 means the current one).
func (c *Client) Grades(ctx context.Context, term string, year int) ([]schema.Grade, error) {
	path := "/znamky/?barNoSkin=1"
	if term != "" || year != 0 {
		q := url.Values{}
		if term != "" {
			q.Set("polrok", term)
		}
		if year != 0 {
			q.Set("rokid", fmt.Sprintf("%d", year))
		}
		path += "&" + q.Encode()
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch grade book: %w", err)
	}
	m := reGradesViewer.FindSubmatch(body)
	if m == nil {
		return nil, result.Errorf(result.KindNotAuthenticated,
			"%s served no grade data, the session may have expired", c.subdomain)
	}

	var payload struct {
		All    []map[string]any          `json:"vsetkyZnamky"`
		Events map[string]map[string]any `json:"vsetkyUdalosti"`
	}
	if err := json.Unmarshal(m[1], &payload); err != nil {
		return nil, fmt.Errorf("parse grade data: %w", err)
	}

	dbi := c.directory()
	subjects := make(map[string]string)
	for _, row := range tableRows(dbi["subjects"]) {
		subjects[asString(row["id"])] = asString(row["name"])
	}
	teachers := make(map[string]string)
	for _, row := range tableRows(dbi["teachers"]) {
		teachers[asString(row["id"])] = fullName(row)
	}

	grades := make([]schema.Grade, 0, len(payload.All))
	for _, row := range payload.All {
		eventID := asString(row["udalostid"])
		grade := schema.Grade{
			EventID:   eventID,
			Grade:     asString(row["data"]),
			Comment:   asString(row["poznamka"]),
			Date:      asString(row["datum"]),
			SubjectID: asInt(row["predmetid"]),
			Subject:   subjects[asString(row["predmetid"])],
		}
		if event := payload.Events[eventID]; event != nil {
			grade.Title = asString(event["p_meno"])
			grade.Teacher = teachers[asString(event["UcitelID"])]
			grade.MaxPoints = asFloat(event["p_vaha_body"])
			grade.Importance = asFloat(event["p_vaha"]) / 20
			grade.Verbal = asString(event["p_typ_udalosti"]) == "3"
			grade.ClassAvg = asFloat(event["priemer"])
			if grade.MaxPoints > 0 {
				grade.Percent = asFloat(row["data"]) / grade.MaxPoints * 100
			}
		}
		grades = append(grades, grade)
	}
	return grades, nil
}
