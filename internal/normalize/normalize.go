// Package normalize maps raw sheet grids onto directory records.
//
// Every function is pure. Row 0 is the header and is skipped. A row whose
// name-bearing cell is empty after trimming is dropped; every other empty or
// missing cell becomes models.NotAvailable.
package normalize

import (
	"strings"

	"github.com/tagumdiocese/directory/internal/media"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/sheets"
)

// Parishes reads the default sheet: A=vicariate, B=name, C=parish priest,
// D=location, E=contact, F=email, G=history, H=fiesta date.
func Parishes(g sheets.Grid) []models.Parish {
	out := make([]models.Parish, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 1)
		if name == "" {
			continue
		}
		out = append(out, models.Parish{
			Name:         name,
			Vicariate:    cell(g, row, 0),
			ParishPriest: cell(g, row, 2),
			Location:     cell(g, row, 3),
			Contact:      cell(g, row, 4),
			Email:        cell(g, row, 5),
			History:      cell(g, row, 6),
			FiestaDate:   cell(g, row, 7),
		})
	}
	return out
}

// BECs reads A=parish, B=name, C=location, D=president, E=contact,
// F=history, G=fiesta date.
func BECs(g sheets.Grid) []models.BEC {
	out := make([]models.BEC, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 1)
		if name == "" {
			continue
		}
		out = append(out, models.BEC{
			Name:       name,
			Parish:     cell(g, row, 0),
			Location:   cell(g, row, 2),
			President:  cell(g, row, 3),
			Contact:    cell(g, row, 4),
			History:    cell(g, row, 5),
			FiestaDate: cell(g, row, 6),
		})
	}
	return out
}

// Schools reads A=name, B=location, C=contact, D=email, E=history,
// F=programs.
func Schools(g sheets.Grid) []models.School {
	out := make([]models.School, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 0)
		if name == "" {
			continue
		}
		out = append(out, models.School{
			Name:     name,
			Location: cell(g, row, 1),
			Contact:  cell(g, row, 2),
			Email:    cell(g, row, 3),
			History:  cell(g, row, 4),
			Programs: cell(g, row, 5),
		})
	}
	return out
}

// Ministries reads A=name, B=coordinator, C=description.
func Ministries(g sheets.Grid) []models.Ministry {
	out := make([]models.Ministry, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 0)
		if name == "" {
			continue
		}
		out = append(out, models.Ministry{
			Name:        name,
			Coordinator: cell(g, row, 1),
			Description: cell(g, row, 2),
		})
	}
	return out
}

// Corporations reads A=name, B=address, C=contact, D=email, E=description.
func Corporations(g sheets.Grid) []models.Corporation {
	out := make([]models.Corporation, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 0)
		if name == "" {
			continue
		}
		out = append(out, models.Corporation{
			Name:        name,
			Address:     cell(g, row, 1),
			Contact:     cell(g, row, 2),
			Email:       cell(g, row, 3),
			Description: cell(g, row, 4),
		})
	}
	return out
}

// Congregations uses the same column layout as Corporations.
func Congregations(g sheets.Grid) []models.Congregation {
	out := make([]models.Congregation, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 0)
		if name == "" {
			continue
		}
		out = append(out, models.Congregation{
			Name:        name,
			Address:     cell(g, row, 1),
			Contact:     cell(g, row, 2),
			Email:       cell(g, row, 3),
			Description: cell(g, row, 4),
		})
	}
	return out
}

// DclaimGroups reads A=name, B=description.
func DclaimGroups(g sheets.Grid) []models.DclaimGroup {
	out := make([]models.DclaimGroup, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		name := g.TrimmedCell(row, 0)
		if name == "" {
			continue
		}
		out = append(out, models.DclaimGroup{
			Name:        name,
			Description: cell(g, row, 1),
		})
	}
	return out
}

// Sponsors keeps column A cells that look like URLs. Drive share links are
// rewritten to direct image URLs.
func Sponsors(g sheets.Grid) []models.Sponsor {
	out := make([]models.Sponsor, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		raw := g.TrimmedCell(row, 0)
		if !strings.HasPrefix(raw, "http") {
			continue
		}
		out = append(out, models.Sponsor{ImageURL: media.DriveImageURL(raw)})
	}
	return out
}

// Videos keeps column A cells that look like URLs and derives the embed URL
// for each.
func Videos(g sheets.Grid) []models.Video {
	out := make([]models.Video, 0, g.DataRows())
	for row := 1; row < len(g); row++ {
		raw := g.TrimmedCell(row, 0)
		if !strings.HasPrefix(raw, "http") {
			continue
		}
		out = append(out, models.Video{
			VideoURL:   raw,
			EmbedURL:   media.EmbedURL(raw),
			Embeddable: media.IsEmbeddable(raw),
		})
	}
	return out
}

// ParishPriests splits a parish's priest cell into four-line entries:
// full name, role, parish, location. Blank lines are ignored and a trailing
// partial group keeps whatever lines it has.
func ParishPriests(text string) []models.ParishPriestEntry {
	if !models.Available(strings.TrimSpace(text)) {
		return []models.ParishPriestEntry{}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	at := func(i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return ""
	}

	entries := make([]models.ParishPriestEntry, 0, (len(lines)+3)/4)
	for i := 0; i < len(lines); i += 4 {
		entries = append(entries, models.ParishPriestEntry{
			FullName: at(i),
			Role:     at(i + 1),
			Parish:   at(i + 2),
			Location: at(i + 3),
		})
	}
	return entries
}

func cell(g sheets.Grid, row, col int) string {
	return orNotAvailable(g.TrimmedCell(row, col))
}

func orNotAvailable(v string) string {
	if v == "" {
		return models.NotAvailable
	}
	return v
}
