package normalize

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagumdiocese/directory/internal/airtable"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/sheets"
)

func parishGrid() sheets.Grid {
	return sheets.Grid{
		{"Current", "Parish", "Parish Priest", "Location", "Contact", "Email", "History", "Fiesta"},
		{"Vicariate of St. Joseph", "Christ the King Cathedral", "Rev. Fr. A\nParish Priest\nCathedral\nTagum", "Tagum City", "084-123", "", "Founded 1960", "Nov 24"},
		{"Vicariate of St. Joseph", "   ", "Rev. Fr. B"},
		{"", "San Isidro Labrador", " ", " Nabunturan "},
		{},
	}
}

func TestParishes(t *testing.T) {
	parishes := Parishes(parishGrid())

	require.Len(t, parishes, 2)
	assert.Equal(t, models.Parish{
		Name:         "Christ the King Cathedral",
		Vicariate:    "Vicariate of St. Joseph",
		ParishPriest: "Rev. Fr. A\nParish Priest\nCathedral\nTagum",
		Location:     "Tagum City",
		Contact:      "084-123",
		Email:        models.NotAvailable,
		History:      "Founded 1960",
		FiestaDate:   "Nov 24",
	}, parishes[0])
	assert.Equal(t, models.Parish{
		Name:         "San Isidro Labrador",
		Vicariate:    models.NotAvailable,
		ParishPriest: models.NotAvailable,
		Location:     "Nabunturan",
		Contact:      models.NotAvailable,
		Email:        models.NotAvailable,
		History:      models.NotAvailable,
		FiestaDate:   models.NotAvailable,
	}, parishes[1])
}

func TestParishes_Idempotent(t *testing.T) {
	g := parishGrid()

	assert.Equal(t, Parishes(g), Parishes(g))
}

func TestNormalizers_EmptyGrid(t *testing.T) {
	for _, g := range []sheets.Grid{nil, {{"header only"}}} {
		assert.Empty(t, Parishes(g))
		assert.Empty(t, BECs(g))
		assert.Empty(t, Schools(g))
		assert.Empty(t, Ministries(g))
		assert.Empty(t, Corporations(g))
		assert.Empty(t, Congregations(g))
		assert.Empty(t, DclaimGroups(g))
		assert.Empty(t, Sponsors(g))
		assert.Empty(t, Videos(g))
	}
}

// assertNoEmptyFields fails if any string field of v is empty.
func assertNoEmptyFields(t *testing.T, v interface{}) {
	t.Helper()
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.NumField(); i++ {
		if rv.Field(i).Kind() != reflect.String {
			continue
		}
		assert.NotEmpty(t, rv.Field(i).String(), "%T.%s", v, rv.Type().Field(i).Name)
	}
}

func TestNormalizers_FillSentinel(t *testing.T) {
	sparse := sheets.Grid{{"h"}, {"Name A", "Name B"}, {"", ""}}

	for _, p := range Parishes(sparse) {
		assertNoEmptyFields(t, p)
	}
	for _, b := range BECs(sparse) {
		assertNoEmptyFields(t, b)
	}
	for _, s := range Schools(sparse) {
		assertNoEmptyFields(t, s)
	}
	for _, m := range Ministries(sparse) {
		assertNoEmptyFields(t, m)
	}
	for _, c := range Corporations(sparse) {
		assertNoEmptyFields(t, c)
	}
	for _, c := range Congregations(sparse) {
		assertNoEmptyFields(t, c)
	}
	for _, d := range DclaimGroups(sparse) {
		assertNoEmptyFields(t, d)
	}
	assert.Len(t, Schools(sparse), 1)
	assert.Len(t, BECs(sparse), 1)
}

func TestBECs(t *testing.T) {
	g := sheets.Grid{
		{"Parish", "GKK", "Location", "President", "Contact", "History", "Fiesta"},
		{"St. Joseph", "GKK San Roque", "Purok 3", "Juan Dela Cruz", "0917", "", "Aug 16"},
		{"St. Joseph", ""},
	}

	becs := BECs(g)

	require.Len(t, becs, 1)
	assert.Equal(t, "GKK San Roque", becs[0].Name)
	assert.Equal(t, "St. Joseph", becs[0].Parish)
	assert.Equal(t, "Juan Dela Cruz", becs[0].President)
	assert.Equal(t, models.NotAvailable, becs[0].History)
	assert.Equal(t, "Aug 16", becs[0].FiestaDate)
}

func TestSchoolsAndInstitutions(t *testing.T) {
	schools := Schools(sheets.Grid{{"h"}, {"Holy Cross", "Tagum", "", "hc@example.org", "", "K-12"}})
	require.Len(t, schools, 1)
	assert.Equal(t, "K-12", schools[0].Programs)
	assert.Equal(t, models.NotAvailable, schools[0].Contact)

	ministries := Ministries(sheets.Grid{{"h"}, {"Youth Ministry", "Fr. C"}})
	require.Len(t, ministries, 1)
	assert.Equal(t, models.Ministry{Name: "Youth Ministry", Coordinator: "Fr. C", Description: models.NotAvailable}, ministries[0])

	corporations := Corporations(sheets.Grid{{"h"}, {"Diocesan Foundation", "Tagum", "", "", "Charity"}})
	require.Len(t, corporations, 1)
	assert.Equal(t, "Charity", corporations[0].Description)

	congregations := Congregations(sheets.Grid{{"h"}, {"Sisters of Mercy", "Mabini"}})
	require.Len(t, congregations, 1)
	assert.Equal(t, "Mabini", congregations[0].Address)
	assert.Equal(t, models.NotAvailable, congregations[0].Email)

	groups := DclaimGroups(sheets.Grid{{"h"}, {"Couples for Christ", "Family renewal"}, {" "}})
	assert.Equal(t, []models.DclaimGroup{{Name: "Couples for Christ", Description: "Family renewal"}}, groups)
}

func TestSponsors_FiltersAndRewrites(t *testing.T) {
	g := sheets.Grid{
		{"Image"},
		{"not-a-url"},
		{" https://drive.google.com/file/d/ABC123/view "},
		{"https://cdn.example.org/sponsor.png"},
		{""},
	}

	sponsors := Sponsors(g)

	assert.Equal(t, []models.Sponsor{
		{ImageURL: "https://drive.google.com/uc?export=view&id=ABC123"},
		{ImageURL: "https://cdn.example.org/sponsor.png"},
	}, sponsors)
}

func TestVideos_DerivesEmbedURL(t *testing.T) {
	g := sheets.Grid{
		{"Video"},
		{"https://youtu.be/abc"},
		{"ftp://example.org/video"},
		{"https://drive.google.com/file/d/XYZ/view"},
	}

	videos := Videos(g)

	require.Len(t, videos, 2)
	assert.Equal(t, "https://youtu.be/abc", videos[0].VideoURL)
	assert.Equal(t, "https://www.youtube.com/embed/abc?autoplay=1&playsinline=1&controls=1", videos[0].EmbedURL)
	assert.Equal(t, "https://drive.google.com/file/d/XYZ/preview?autoplay=1", videos[1].EmbedURL)
}

func TestVideos_FlagsUnknownHosts(t *testing.T) {
	g := sheets.Grid{
		{"Video"},
		{"https://youtu.be/abc"},
		{"https://vimeo.com/12345"},
	}

	videos := Videos(g)

	require.Len(t, videos, 2)
	assert.True(t, videos[0].Embeddable)
	assert.False(t, videos[1].Embeddable)
	assert.Equal(t, "https://vimeo.com/12345?autoplay=1", videos[1].EmbedURL)
}

func TestParishPriests(t *testing.T) {
	text := "Rev. Fr. A\nParish Priest\nCathedral\nTagum\n\n  Rev. Fr. B  \nParochial Vicar\nCathedral\nTagum\nMsgr. C\nResident"

	entries := ParishPriests(text)

	require.Len(t, entries, 3)
	assert.Equal(t, models.ParishPriestEntry{FullName: "Rev. Fr. A", Role: "Parish Priest", Parish: "Cathedral", Location: "Tagum"}, entries[0])
	assert.Equal(t, "Rev. Fr. B", entries[1].FullName)
	assert.Equal(t, models.ParishPriestEntry{FullName: "Msgr. C", Role: "Resident"}, entries[2])
}

func TestParishPriests_NotAvailable(t *testing.T) {
	assert.Empty(t, ParishPriests(models.NotAvailable))
	assert.Empty(t, ParishPriests("   "))
}

func TestParishesFromRecords(t *testing.T) {
	records := []airtable.Record{
		{ID: "rec1", Fields: map[string]interface{}{
			FieldParish:       " Holy Child ",
			FieldCurrent:      "Vicariate of Mary",
			FieldParishPriest: "Rev. Fr. D",
			FieldContact:      float64(9171234567),
			FieldFiestaDate:   "",
		}},
		{ID: "rec2", Fields: map[string]interface{}{FieldLocation: "Nowhere"}},
		{ID: "rec3", Fields: map[string]interface{}{
			FieldParish:    "Sto. Nino",
			FieldVicariate: "Vicariate of St. Joseph",
			FieldCurrent:   "ignored",
		}},
	}

	parishes := ParishesFromRecords(records)

	require.Len(t, parishes, 2)
	assert.Equal(t, models.Parish{
		Name:         "Holy Child",
		Vicariate:    "Vicariate of Mary",
		ParishPriest: "Rev. Fr. D",
		Location:     models.NotAvailable,
		Contact:      "9171234567",
		Email:        models.NotAvailable,
		History:      models.NotAvailable,
		FiestaDate:   models.NotAvailable,
	}, parishes[0])
	assert.Equal(t, "Vicariate of St. Joseph", parishes[1].Vicariate)
}
