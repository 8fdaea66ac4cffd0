package services

import (
	"slices"

	"sales-dashboard/internal/models"
)

// ApplyFilters returns the rows satisfying every active predicate of the
// criteria, preserving input order. The input slice is never mutated, and
// applying the same criteria twice yields the same result.
func ApplyFilters(records []models.Sale, c models.FilterCriteria) []models.Sale {
	out := make([]models.Sale, 0, len(records))
	for _, s := range records {
		if matchesCriteria(s, c) {
			out = append(out, s)
		}
	}
	return out
}

func matchesCriteria(s models.Sale, c models.FilterCriteria) bool {
	if !c.From.IsZero() && s.Date.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && s.Date.After(c.To) {
		return false
	}
	if len(c.Statuses) > 0 && !slices.Contains(c.Statuses, s.Status) {
		return false
	}
	if len(c.Categories) > 0 && !slices.Contains(c.Categories, s.Category) {
		return false
	}
	if len(c.Regions) > 0 && !slices.Contains(c.Regions, s.Region) {
		return false
	}
	return true
}
