// Package clergy turns the category-segmented priests sheet into flat
// priest records.
//
// The sheet has no category column. A row holding only column A starts a new
// category; every following row belongs to it until the next such row. The
// category name also decides how the row's columns are read.
package clergy

import (
	"regexp"
	"strings"

	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/sheets"
)

// titlePattern selects associate lines that name a member of the clergy.
var titlePattern = regexp.MustCompile(`(?i)^(Rev\.|Fr\.|Msgr\.|Deacon|Bishop|Most Rev\.|Very Rev\.)`)

var associateSeparator = regexp.MustCompile(`\n|,`)

// Scheme is the column layout a category uses.
type Scheme int

const (
	// SchemeParish reads A=location, B=assignment, C=primary priest,
	// D=associates.
	SchemeParish Scheme = iota
	// SchemeInstitution reads A=institution, B=role, C=priest.
	SchemeInstitution
)

func (s Scheme) String() string {
	if s == SchemeInstitution {
		return "institution"
	}
	return "parish"
}

// SchemeFor picks the layout for a category by keyword. Matching is a plain
// case-insensitive substring test on the header text.
func SchemeFor(category string) Scheme {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "diocesan school"),
		strings.Contains(c, "qacs formator"),
		strings.Contains(c, "priest") && strings.Contains(c, "outside"),
		strings.Contains(c, "retired"):
		return SchemeInstitution
	}
	return SchemeParish
}

func isChaplaincy(category string) bool {
	return strings.Contains(strings.ToLower(category), "chaplain")
}

// IsCategoryRow reports whether row introduces a new category.
func IsCategoryRow(g sheets.Grid, row int) bool {
	return g.TrimmedCell(row, 0) != "" &&
		g.TrimmedCell(row, 1) == "" &&
		g.TrimmedCell(row, 2) == "" &&
		g.TrimmedCell(row, 3) == ""
}

// Segment walks the sheet top to bottom, skipping the header row. Malformed
// rows are skipped or partially read; Segment never fails.
func Segment(g sheets.Grid) []models.Priest {
	priests := make([]models.Priest, 0, g.DataRows())
	category := ""

	for row := 1; row < len(g); row++ {
		if IsCategoryRow(g, row) {
			category = g.TrimmedCell(row, 0)
			continue
		}

		active := category
		if active == "" {
			active = models.DefaultCategory
		}

		if SchemeFor(category) == SchemeInstitution {
			if p, ok := institutionRow(g, row, active); ok {
				priests = append(priests, p)
			}
			continue
		}
		priests = append(priests, parishRow(g, row, active, isChaplaincy(category))...)
	}
	return priests
}

func institutionRow(g sheets.Grid, row int, category string) (models.Priest, bool) {
	name := g.TrimmedCell(row, 2)
	if name == "" {
		return models.Priest{}, false
	}
	return models.Priest{
		Name:       name,
		Title:      models.NotAvailable,
		Assignment: orNotAvailable(g.TrimmedCell(row, 0)),
		Role:       orNotAvailable(g.TrimmedCell(row, 1)),
		Category:   category,
		Location:   models.NotAvailable,
	}, true
}

func parishRow(g sheets.Grid, row int, category string, chaplaincy bool) []models.Priest {
	primaryRole, associateRole := models.RoleParishPriest, models.RoleParochialVicar
	if chaplaincy {
		primaryRole, associateRole = models.RoleChaplain, models.RoleChaplain
	}

	location := orNotAvailable(g.TrimmedCell(row, 0))
	assignment := orNotAvailable(g.TrimmedCell(row, 1))
	record := func(name, role string) models.Priest {
		return models.Priest{
			Name:       name,
			Title:      models.NotAvailable,
			Assignment: assignment,
			Role:       role,
			Category:   category,
			Location:   location,
		}
	}

	var out []models.Priest
	if name := g.TrimmedCell(row, 2); name != "" {
		out = append(out, record(name, primaryRole))
	}
	for _, name := range Associates(g.TrimmedCell(row, 3)) {
		out = append(out, record(name, associateRole))
	}
	return out
}

// Associates splits an associates cell on newlines and commas and keeps the
// lines that start with a clerical title. Other lines are dropped silently.
func Associates(cell string) []string {
	if cell == "" {
		return nil
	}
	var names []string
	for _, line := range associateSeparator.Split(cell, -1) {
		line = strings.TrimSpace(line)
		if line != "" && titlePattern.MatchString(line) {
			names = append(names, line)
		}
	}
	return names
}

// GroupByCategory groups priests by category, in the order each category is
// first seen.
func GroupByCategory(priests []models.Priest) []models.CategoryGroup {
	groups := []models.CategoryGroup{}
	index := make(map[string]int)
	for _, p := range priests {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, models.CategoryGroup{Category: p.Category})
		}
		groups[i].Priests = append(groups[i].Priests, p)
	}
	return groups
}

func orNotAvailable(v string) string {
	if v == "" {
		return models.NotAvailable
	}
	return v
}
