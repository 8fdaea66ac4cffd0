package services

import (
	"reflect"
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleSales() []models.Sale {
	return []models.Sale{
		{ID: "S1", Date: date(2024, 1, 1), Amount: 100, Quantity: 1, Status: models.StatusCompleted, Category: "A", Region: "South"},
		{ID: "S2", Date: date(2024, 1, 15), Amount: 200, Quantity: 2, Status: models.StatusCancelled, Category: "B", Region: "South"},
		{ID: "S3", Date: date(2024, 2, 1), Amount: 150, Quantity: 1, Status: models.StatusCompleted, Category: "A", Region: "North"},
	}
}

func TestApplyFilters_NoRestriction(t *testing.T) {
	input := sampleSales()
	got := ApplyFilters(input, models.FilterCriteria{})

	if !reflect.DeepEqual(got, input) {
		t.Errorf("empty criteria should return all rows unchanged, got %v", got)
	}
}

func TestApplyFilters_DateRangeInclusive(t *testing.T) {
	got := ApplyFilters(sampleSales(), models.FilterCriteria{
		From: date(2024, 1, 1),
		To:   date(2024, 1, 15),
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 rows on inclusive bounds, got %d", len(got))
	}
	if got[0].ID != "S1" || got[1].ID != "S2" {
		t.Errorf("filtering should preserve order, got %s,%s", got[0].ID, got[1].ID)
	}
}

func TestApplyFilters_InvertedRangeIsEmpty(t *testing.T) {
	got := ApplyFilters(sampleSales(), models.FilterCriteria{
		From: date(2024, 3, 1),
		To:   date(2024, 1, 1),
	})

	if len(got) != 0 {
		t.Errorf("start after end should yield empty result, got %d rows", len(got))
	}
}

func TestApplyFilters_StatusSet(t *testing.T) {
	got := ApplyFilters(sampleSales(), models.FilterCriteria{
		Statuses: []models.Status{models.StatusCompleted},
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 completed rows, got %d", len(got))
	}
	for _, s := range got {
		if s.Status != models.StatusCompleted {
			t.Errorf("row %s has status %s, want completed", s.ID, s.Status)
		}
	}
}

func TestApplyFilters_Conjunction(t *testing.T) {
	got := ApplyFilters(sampleSales(), models.FilterCriteria{
		Statuses:   []models.Status{models.StatusCompleted},
		Categories: []string{"A"},
		Regions:    []string{"North"},
	})

	if len(got) != 1 || got[0].ID != "S3" {
		t.Errorf("expected only S3 to satisfy all predicates, got %v", got)
	}
}

func TestApplyFilters_EmptyDataset(t *testing.T) {
	got := ApplyFilters(nil, models.FilterCriteria{Categories: []string{"A"}})
	if len(got) != 0 {
		t.Errorf("empty dataset should yield empty result, got %d rows", len(got))
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	criteria := models.FilterCriteria{
		From:       date(2024, 1, 1),
		To:         date(2024, 12, 31),
		Categories: []string{"A"},
	}

	once := ApplyFilters(sampleSales(), criteria)
	twice := ApplyFilters(once, criteria)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("repeated application should be idempotent: %v vs %v", once, twice)
	}
}

func TestApplyFilters_SubsetProperty(t *testing.T) {
	input := sampleSales()
	got := ApplyFilters(input, models.FilterCriteria{Regions: []string{"South"}})

	if len(got) > len(input) {
		t.Fatalf("filtered count %d exceeds input count %d", len(got), len(input))
	}
	for _, s := range got {
		found := false
		for _, in := range input {
			if in.ID == s.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("filtered row %s is not part of the input", s.ID)
		}
	}
}

func TestApplyFilters_NarrowingNeverGrows(t *testing.T) {
	wide := ApplyFilters(sampleSales(), models.FilterCriteria{
		Categories: []string{"A", "B"},
	})
	narrow := ApplyFilters(sampleSales(), models.FilterCriteria{
		Categories: []string{"A"},
	})

	if len(narrow) > len(wide) {
		t.Errorf("narrowing a set filter grew the result: %d > %d", len(narrow), len(wide))
	}
}

func TestApplyFilters_InputUnchanged(t *testing.T) {
	input := sampleSales()
	want := sampleSales()

	ApplyFilters(input, models.FilterCriteria{Statuses: []models.Status{models.StatusPending}})

	if !reflect.DeepEqual(input, want) {
		t.Error("filtering must not mutate the input dataset")
	}
}
