package models

// Roles assigned by the clergy roster segmenter.
const (
	RoleParishPriest   = "Parish Priest"
	RoleParochialVicar = "Parochial Vicar"
	RoleChaplain       = "Chaplain"
)

// DefaultCategory is used for clergy rows that precede any category header.
const DefaultCategory = "Clergy"

// Priest is one clergy record. Records have no identity; the roster order is
// the only ordering.
type Priest struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Assignment string `json:"assignment"`
	Role       string `json:"role"`
	Category   string `json:"category"`
	Location   string `json:"location"`
}

// CategoryGroup is a run of priests sharing a category.
type CategoryGroup struct {
	Category string   `json:"category"`
	Priests  []Priest `json:"priests"`
}

// ParishPriestEntry is one clergy entry inside a parish's priest cell, which
// stores four lines per priest: full name, role, parish, location.
type ParishPriestEntry struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Parish   string `json:"parish"`
	Location string `json:"location"`
}

// Vicariate groups the parishes that share a vicariate name.
type Vicariate struct {
	Name     string   `json:"name"`
	Parishes []Parish `json:"parishes"`
}
