package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tagumdiocese/directory/internal/airtable"
	"github.com/tagumdiocese/directory/internal/models"
)

// Airtable field names for the parish table.
const (
	FieldParish       = "Parish"
	FieldVicariate    = "Vicariate"
	FieldCurrent      = "Current"
	FieldParishPriest = "Parish Priest"
	FieldLocation     = "Location"
	FieldContact      = "Contact"
	FieldEmail        = "Email"
	FieldHistory      = "Brief Parish History"
	FieldFiestaDate   = "Fiesta Date"
)

// ParishesFromRecords maps parish table records with the same sentinel rules
// as Parishes. Vicariate falls back to the "Current" field.
func ParishesFromRecords(records []airtable.Record) []models.Parish {
	out := make([]models.Parish, 0, len(records))
	for _, r := range records {
		name := text(r.Fields, FieldParish)
		if name == "" {
			continue
		}
		vicariate := text(r.Fields, FieldVicariate)
		if vicariate == "" {
			vicariate = text(r.Fields, FieldCurrent)
		}
		out = append(out, models.Parish{
			Name:         name,
			Vicariate:    orNotAvailable(vicariate),
			ParishPriest: orNotAvailable(text(r.Fields, FieldParishPriest)),
			Location:     orNotAvailable(text(r.Fields, FieldLocation)),
			Contact:      orNotAvailable(text(r.Fields, FieldContact)),
			Email:        orNotAvailable(text(r.Fields, FieldEmail)),
			History:      orNotAvailable(text(r.Fields, FieldHistory)),
			FiestaDate:   orNotAvailable(text(r.Fields, FieldFiestaDate)),
		})
	}
	return out
}

// text renders a field value as trimmed text. Numbers are printed without
// an exponent so phone numbers stored as numbers survive.
func text(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
