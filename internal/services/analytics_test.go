package services

import (
	"testing"

	"sales-dashboard/internal/models"
)

func newTestAnalytics() *Analytics {
	a := NewAnalytics()
	a.SetData(sampleSales())
	return a
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics()
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.Version() == "" {
		t.Error("a fresh service should carry a dataset version")
	}
	if a.RecordCount() != 0 {
		t.Errorf("fresh service should hold no records, got %d", a.RecordCount())
	}
}

func TestAnalytics_SetDataBumpsVersion(t *testing.T) {
	a := NewAnalytics()
	before := a.Version()

	a.SetData(sampleSales())

	if a.Version() == before {
		t.Error("SetData should change the dataset version")
	}
	if a.RecordCount() != 3 {
		t.Errorf("RecordCount = %d, want 3", a.RecordCount())
	}
}

func TestAnalytics_SnapshotMemoization(t *testing.T) {
	a := newTestAnalytics()
	criteria := models.FilterCriteria{Categories: []string{"A"}}

	first := a.Snapshot(criteria)
	second := a.Snapshot(criteria)

	if first != second {
		t.Error("identical criteria should be served from the memo")
	}

	// Equivalent criteria with reordered set values hit the same entry.
	third := a.Snapshot(models.FilterCriteria{Categories: []string{"A"}})
	if first != third {
		t.Error("canonicalized criteria should share a memo entry")
	}
}

func TestAnalytics_SnapshotInvalidatedOnNewData(t *testing.T) {
	a := newTestAnalytics()
	criteria := models.FilterCriteria{}

	before := a.Snapshot(criteria)
	a.SetData(sampleSales()[:1])
	after := a.Snapshot(criteria)

	if before == after {
		t.Error("replacing the dataset must invalidate memoized snapshots")
	}
	if after.FilteredCount != 1 {
		t.Errorf("FilteredCount = %d, want 1 after data swap", after.FilteredCount)
	}
}

func TestAnalytics_SnapshotContents(t *testing.T) {
	a := newTestAnalytics()
	snap := a.Snapshot(models.FilterCriteria{})

	if snap.FilteredCount != 3 {
		t.Errorf("FilteredCount = %d, want 3", snap.FilteredCount)
	}
	if snap.KPIs.TotalSales != 3 {
		t.Errorf("KPIs.TotalSales = %d, want 3", snap.KPIs.TotalSales)
	}
	if len(snap.ByCategory) != 2 {
		t.Errorf("ByCategory groups = %d, want 2", len(snap.ByCategory))
	}
	if len(snap.Monthly) != 2 {
		t.Errorf("Monthly points = %d, want 2", len(snap.Monthly))
	}
	if snap.Trend.Trend == "" {
		t.Error("snapshot should include a trend summary")
	}
}

func TestAnalytics_SnapshotEmptyDataset(t *testing.T) {
	a := NewAnalytics()
	snap := a.Snapshot(models.FilterCriteria{})

	if snap.FilteredCount != 0 {
		t.Errorf("FilteredCount = %d, want 0", snap.FilteredCount)
	}
	if snap.KPIs != (models.KPISet{}) {
		t.Errorf("empty dataset should yield zero KPIs, got %+v", snap.KPIs)
	}
	if len(snap.ByCategory) != 0 || len(snap.Monthly) != 0 {
		t.Error("empty dataset should yield empty aggregate tables")
	}
}

func TestAnalytics_FilterOptions(t *testing.T) {
	a := newTestAnalytics()
	opts := a.FilterOptions()

	if len(opts.Statuses) != 3 {
		t.Errorf("Statuses = %v, want all three", opts.Statuses)
	}
	if len(opts.Categories) != 2 || opts.Categories[0] != "A" || opts.Categories[1] != "B" {
		t.Errorf("Categories = %v, want sorted [A B]", opts.Categories)
	}
	if !opts.DateMin.Equal(date(2024, 1, 1)) || !opts.DateMax.Equal(date(2024, 2, 1)) {
		t.Errorf("date bounds = %v..%v", opts.DateMin, opts.DateMax)
	}
}

func TestAnalytics_Stats(t *testing.T) {
	a := newTestAnalytics()
	a.Snapshot(models.FilterCriteria{})

	stats := a.Stats()
	if stats["record_count"] != 3 {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
	if stats["memo_entries"] != 1 {
		t.Errorf("memo_entries = %v, want 1", stats["memo_entries"])
	}
	if stats["dataset_version"] == "" {
		t.Error("stats should expose the dataset version")
	}
}

func TestAnalytics_ConcurrentSnapshots(t *testing.T) {
	a := newTestAnalytics()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()
			_ = a.Snapshot(models.FilterCriteria{Categories: []string{"A"}})
			_ = a.Snapshot(models.FilterCriteria{})
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestProjectRecords_DefaultColumns(t *testing.T) {
	rows, err := ProjectRecords(sampleSales(), nil, 0)
	if err != nil {
		t.Fatalf("ProjectRecords() failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, col := range DefaultColumns {
		if _, ok := rows[0][col]; !ok {
			t.Errorf("default projection missing column %q", col)
		}
	}
}

func TestProjectRecords_SelectedColumns(t *testing.T) {
	rows, err := ProjectRecords(sampleSales(), []string{"id", "amount"}, 0)
	if err != nil {
		t.Fatalf("ProjectRecords() failed: %v", err)
	}

	if len(rows[0]) != 2 {
		t.Errorf("projection should contain exactly the requested columns, got %v", rows[0])
	}
	if rows[0]["id"] != "S1" {
		t.Errorf("id = %v, want S1", rows[0]["id"])
	}
}

func TestProjectRecords_UnknownColumn(t *testing.T) {
	_, err := ProjectRecords(sampleSales(), []string{"password"}, 0)
	if err == nil {
		t.Error("columns outside the whitelist must be rejected")
	}
}

func TestProjectRecords_Limit(t *testing.T) {
	rows, err := ProjectRecords(sampleSales(), []string{"id"}, 2)
	if err != nil {
		t.Fatalf("ProjectRecords() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("limit 2 returned %d rows", len(rows))
	}
}

func TestCriteriaKey_OrderIndependent(t *testing.T) {
	a := models.FilterCriteria{Categories: []string{"B", "A"}, Regions: []string{"South", "North"}}
	b := models.FilterCriteria{Categories: []string{"A", "B"}, Regions: []string{"North", "South"}}

	if a.Key() != b.Key() {
		t.Errorf("criteria keys should not depend on set order: %q vs %q", a.Key(), b.Key())
	}
}
