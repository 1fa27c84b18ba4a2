// Package search implements case-insensitive substring search over the
// in-memory directory.
package search

import (
	"strings"

	"github.com/tagumdiocese/directory/internal/models"
)

// Soft is the outcome of a best-effort load. A failed load keeps its error
// for logging and tests while Items stays empty.
type Soft[T any] struct {
	Items []T
	Err   error
}

// Settle converts a load result into a Soft value.
func Settle[T any](items []T, err error) Soft[T] {
	if err != nil || items == nil {
		return Soft[T]{Items: []T{}, Err: err}
	}
	return Soft[T]{Items: items}
}

// Failed reports whether the load degraded to empty.
func (s Soft[T]) Failed() bool {
	return s.Err != nil
}

// Corpus is every searchable source, each loaded independently.
type Corpus struct {
	Parishes      Soft[models.Parish]
	BECs          Soft[models.BEC]
	Schools       Soft[models.School]
	Congregations Soft[models.Congregation]
	Corporations  Soft[models.Corporation]
	DclaimGroups  Soft[models.DclaimGroup]
}

// Result is one search hit. Position is the entity's index in its own list.
type Result struct {
	Kind     models.Kind   `json:"kind"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Position int           `json:"position"`
	Entity   models.Entity `json:"entity"`
}

// Search returns every record where one of its searchable fields contains
// query, ignoring case. Results are grouped by kind in corpus order. A blank
// query matches nothing.
func Search(query string, c Corpus) []Result {
	results := []Result{}
	if strings.TrimSpace(query) == "" {
		return results
	}
	q := strings.ToLower(query)

	for i, p := range c.Parishes.Items {
		if matches(q, p.Name, p.Location, p.Vicariate, p.ParishPriest) {
			results = append(results, newResult(p, i, p.Location, p.Vicariate))
		}
	}
	for i, b := range c.BECs.Items {
		if matches(q, b.Name, b.Parish, b.Location, b.President) {
			results = append(results, newResult(b, i, b.Parish))
		}
	}
	for i, s := range c.Schools.Items {
		if matches(q, s.Name, s.Location) {
			results = append(results, newResult(s, i, s.Location))
		}
	}
	for i, cg := range c.Congregations.Items {
		if matches(q, cg.Name, cg.Address) {
			results = append(results, newResult(cg, i, cg.Address))
		}
	}
	for i, co := range c.Corporations.Items {
		if matches(q, co.Name, co.Address) {
			results = append(results, newResult(co, i, co.Address))
		}
	}
	for i, d := range c.DclaimGroups.Items {
		if matches(q, d.Name, d.Description) {
			results = append(results, newResult(d, i))
		}
	}
	return results
}

// FilterParishes is the parish screen filter: name only, and a blank query
// keeps the full list. Like Search, a non-blank query is matched untrimmed.
func FilterParishes(query string, parishes []models.Parish) []models.Parish {
	if strings.TrimSpace(query) == "" {
		return parishes
	}
	q := strings.ToLower(query)
	out := []models.Parish{}
	for _, p := range parishes {
		if matches(q, p.Name) {
			out = append(out, p)
		}
	}
	return out
}

// FilterBECs is the BEC screen filter over name and parish.
func FilterBECs(query string, becs []models.BEC) []models.BEC {
	if strings.TrimSpace(query) == "" {
		return becs
	}
	q := strings.ToLower(query)
	out := []models.BEC{}
	for _, b := range becs {
		if matches(q, b.Name, b.Parish) {
			out = append(out, b)
		}
	}
	return out
}

// matches expects q already lowercased.
func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// newResult takes the subtitle from the first available candidate, falling
// back to the kind label.
func newResult(e models.Entity, position int, subtitles ...string) Result {
	subtitle := KindLabel(e.Kind())
	for _, s := range subtitles {
		if models.Available(s) {
			subtitle = s
			break
		}
	}
	return Result{
		Kind:     e.Kind(),
		Title:    e.Title(),
		Subtitle: subtitle,
		Position: position,
		Entity:   e,
	}
}

// KindLabel is the display label for a kind.
func KindLabel(k models.Kind) string {
	switch k {
	case models.KindParish:
		return "Parish"
	case models.KindBEC:
		return "BEC"
	case models.KindSchool:
		return "School"
	case models.KindCongregation:
		return "Congregation"
	case models.KindCorporation:
		return "Corporation"
	case models.KindDclaim:
		return "DCLAIM Group"
	default:
		return string(k)
	}
}
