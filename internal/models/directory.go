package models

// NotAvailable is the placeholder stored in any field that has no source data.
// Clients test equality against it to decide whether to render a field.
const NotAvailable = "N/A"

// Kind discriminates the searchable directory entities.
type Kind string

const (
	KindParish       Kind = "parish"
	KindBEC          Kind = "bec"
	KindSchool       Kind = "school"
	KindCongregation Kind = "congregation"
	KindCorporation  Kind = "corporation"
	KindDclaim       Kind = "dclaim"
)

// Entity is implemented by every searchable directory record.
type Entity interface {
	Kind() Kind
	// Title is the record's display name.
	Title() string
}

// Parish is one row of the default sheet.
// ParishPriest holds the raw clergy cell; see ParishPriestEntry.
type Parish struct {
	Name         string `json:"name"`
	Vicariate    string `json:"vicariate"`
	ParishPriest string `json:"parishPriest"`
	Location     string `json:"location"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	History      string `json:"history"`
	FiestaDate   string `json:"fiestaDate"`
}

// BEC is a Basic Ecclesial Community (GKK). Parish is free text, not a key.
type BEC struct {
	Name       string `json:"name"`
	Parish     string `json:"parish"`
	Location   string `json:"location"`
	President  string `json:"president"`
	Contact    string `json:"contact"`
	History    string `json:"history"`
	FiestaDate string `json:"fiestaDate"`
}

// School is a diocesan school.
type School struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	History  string `json:"history"`
	Programs string `json:"programs"`
}

// Ministry is a ministry or apostolate.
type Ministry struct {
	Name        string `json:"name"`
	Coordinator string `json:"coordinator"`
	Description string `json:"description"`
}

// Corporation is a diocesan corporation or entity.
type Corporation struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Congregation is a religious congregation or order. Same shape as
// Corporation, read from its own sheet.
type Congregation struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// DclaimGroup is a lay group or movement under DCLAIM.
type DclaimGroup struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Sponsor is a sponsor image shown by the engagement trigger.
type Sponsor struct {
	ImageURL string `json:"imageUrl"`
}

// Video is a promotional video. EmbedURL is the iframe-ready form of VideoURL.
// Embeddable is false for hosts with no known player page.
type Video struct {
	VideoURL   string `json:"videoUrl"`
	EmbedURL   string `json:"embedUrl"`
	Embeddable bool   `json:"embeddable"`
}

func (Parish) Kind() Kind       { return KindParish }
func (BEC) Kind() Kind          { return KindBEC }
func (School) Kind() Kind       { return KindSchool }
func (Congregation) Kind() Kind { return KindCongregation }
func (Corporation) Kind() Kind  { return KindCorporation }
func (DclaimGroup) Kind() Kind  { return KindDclaim }

func (p Parish) Title() string       { return p.Name }
func (b BEC) Title() string          { return b.Name }
func (s School) Title() string       { return s.Name }
func (c Congregation) Title() string { return c.Name }
func (c Corporation) Title() string  { return c.Name }
func (d DclaimGroup) Title() string  { return d.Name }

// Available reports whether a normalized field carries real data.
func Available(value string) bool {
	return value != "" && value != NotAvailable
}
