package validation

import (
	"fmt"
	"strings"

	"github.com/jiseti/jiseti-api/internal/models"
)

// Category whitelists per record type. Titles are matched after
// normalization, so the display casing here is cosmetic.
var (
	RedFlagCategories = []string{
		"corruption",
		"theft",
		"land-grabbing",
		"mismanagement of resources",
		"bribery",
		"embezzlement",
		"fraud",
		"other",
	}

	InterventionCategories = []string{
		"repair bad road sections",
		"collapsed bridges",
		"flooding",
		"sewage",
		"water shortage",
		"electricity issues",
		"healthcare facilities",
		"education facilities",
		"waste management",
		"other",
	}
)

// CategoriesForType returns the title whitelist for a record type, or nil
// for an unknown type.
func CategoriesForType(recordType string) []string {
	switch recordType {
	case models.TypeRedFlag:
		return RedFlagCategories
	case models.TypeIntervention:
		return InterventionCategories
	}
	return nil
}

// RecordInput carries the caller-proposed record fields.
type RecordInput struct {
	Type        string
	Title       string
	Description string
	Latitude    *float64
	Longitude   *float64
}

// NormalizeTitle trims and lowercases a proposed title.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// ValidateRecord checks a full set of proposed record fields and returns
// the normalized copy to persist. It must pass before any store write,
// on create and update alike.
func ValidateRecord(in RecordInput) (RecordInput, error) {
	categories := CategoriesForType(in.Type)
	if categories == nil {
		return in, fieldErr("type", fmt.Sprintf("type must be %s or %s", models.TypeRedFlag, models.TypeIntervention))
	}

	in.Title = NormalizeTitle(in.Title)
	if len(in.Title) < 3 {
		return in, fieldErr("title", "title must be at least 3 characters")
	}
	if !contains(categories, in.Title) {
		return in, fieldErr("title", fmt.Sprintf("invalid title for %s, valid titles are: %s",
			in.Type, strings.Join(categories, ", ")))
	}

	in.Description = strings.TrimSpace(in.Description)
	if len(in.Description) < 10 {
		return in, fieldErr("description", "description must be at least 10 characters")
	}

	if err := ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
		return in, err
	}

	return in, nil
}

// ValidateCoordinates checks optional geodata against canonical ranges.
// Out-of-range values are rejected, never clamped.
func ValidateCoordinates(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return fieldErr("latitude", "latitude must be between -90 and 90")
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return fieldErr("longitude", "longitude must be between -180 and 180")
	}
	return nil
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
