package edupage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

var reEdupageData = regexp.MustCompile(`edupageData:\s*(\{.*?\}),\s*\n`)

// Meals fetches the canteen menu for a day. Schools without a canteen
// module serve no data, which comes back as entity-not-found rather than
// a backend failure.
func (c *Client) Meals(ctx context.Context, day time.Time) (*schema.Meals, error) {
	date := day.Format(dateLayout)
	body, err := c.get(ctx, "/menu/?date="+date)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	m := reEdupageData.FindSubmatch(body)
	if m == nil {
		return nil, result.Errorf(result.KindEntityNotFound,
			"%s serves no canteen menu", c.subdomain)
	}

	var root map[string]any
	if err := json.Unmarshal(m[1], &root); err != nil {
		return nil, fmt.Errorf("parse menu data: %w", err)
	}
	boarder := asMap(root[c.subdomain])
	days := asMap(boarder["novyListok"])
	rows := asMap(days[date])
	if rows == nil {
		return nil, result.Errorf(result.KindEntityNotFound,
			"no menu published for %s", date)
	}

	// Serving slots are numbered: 1 snack, 2 lunch, 3 afternoon snack.
	meals := &schema.Meals{
		Snack:          parseMeal(asMap(rows["1"]), date),
		Lunch:          parseMeal(asMap(rows["2"]), date),
		AfternoonSnack: parseMeal(asMap(rows["3"]), date),
	}
	if meals.Snack == nil && meals.Lunch == nil && meals.AfternoonSnack == nil {
		return nil, result.Errorf(result.KindEntityNotFound,
			"no menu published for %s", date)
	}
	return meals, nil
}

func parseMeal(row map[string]any, date string) *schema.Meal {
	if row == nil {
		return nil
	}
	meal := &schema.Meal{
		Title:       asString(row["nazov"]),
		Date:        date,
		ServedFrom:  asString(row["vydaj_od"]),
		ServedTo:    asString(row["vydaj_do"]),
		OrderedMeal: asString(row["evidencia"]),
	}
	for _, item := range tableRows(row["rows"]) {
		name := asString(item["nazov"])
		if name == "" {
			continue
		}
		meal.Menus = append(meal.Menus, schema.Menu{
			Name:      name,
			Allergens: asString(item["alergenyStr"]),
			Weight:    asString(item["hmotnostiStr"]),
			Number:    asString(item["menusStr"]),
		})
	}
	if meal.Title == "" && len(meal.Menus) == 0 {
		return nil
	}
	return meal
}
