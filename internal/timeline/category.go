// Package timeline filters, categorizes and flattens the event stream a
// school account sees: homework, grades, messages, absences and the
// housekeeping noise in between.
package timeline

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edubridge/edubridge/internal/result"
)

//go:embed categories.yaml
var categoriesYAML []byte

type categoryTable struct {
	Categories  map[string][]string `yaml:"categories"`
	SystemTypes []string            `yaml:"system_types"`
}

var (
	categories  map[string][]string
	byType      map[string][]string
	systemTypes map[string]bool
)

func init() {
	var tbl categoryTable
	if err := yaml.Unmarshal(categoriesYAML, &tbl); err != nil {
		panic(fmt.Sprintf("timeline: bad embedded category table: %v", err))
	}

	categories = tbl.Categories
	byType = make(map[string][]string)
	for cat, types := range tbl.Categories {
		for _, t := range types {
			byType[t] = append(byType[t], cat)
		}
	}
	for _, list := range byType {
		sort.Strings(list)
	}

	systemTypes = make(map[string]bool, len(tbl.SystemTypes))
	for _, t := range tbl.SystemTypes {
		systemTypes[t] = true
	}
}

// Categories returns the known category names, sorted.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand maps a category name to its raw event type values. Unknown
// categories are an error that lists the valid names.
func Expand(category string) ([]string, error) {
	types, ok := categories[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, &result.Error{
			Kind:    result.KindUnknownCategory,
			Message: fmt.Sprintf("unknown category %q, valid: %s", category, strings.Join(Categories(), ", ")),
			Names:   Categories(),
		}
	}
	out := make([]string, len(types))
	copy(out, types)
	return out, nil
}

// CategoriesFor returns the category labels a raw event type belongs to.
// Most types map to exactly one; unknown types map to none.
func CategoriesFor(rawType string) []string {
	return byType[rawType]
}

// IsSystem reports whether a raw event type is backend housekeeping rather
// than something a person wrote or needs to act on.
func IsSystem(rawType string) bool {
	return systemTypes[strings.ToLower(rawType)]
}
