package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"sales-dashboard/internal/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	sales := GenerateFrom(100, 42, testEnd)
	path := filepath.Join(t.TempDir(), "data", "sales.csv")

	if err := Save(path, sales); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(loaded) != len(sales) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(sales))
	}
	// Order must survive the round trip.
	for i := range sales {
		if loaded[i].ID != sales[i].ID {
			t.Fatalf("row %d out of order: got %s, want %s", i, loaded[i].ID, sales[i].ID)
		}
	}
	if !reflect.DeepEqual(loaded[0], sales[0]) {
		t.Errorf("first record changed in round trip:\ngot  %+v\nwant %+v", loaded[0], sales[0])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestLoad_InvalidData(t *testing.T) {
	header := csvHeader + "\n"
	validRow := "S00001,2024-01-15,Books,Books Item 1,South,Southbridge,Seller 01,Voucher,C1234,20.00,2,40.00,0.10,36.00,completed\n"

	tests := []struct {
		name    string
		csv     string
		wantErr bool
	}{
		{"empty file", "", true},
		{"header only", header, true},
		{"all rows malformed", header + "garbage,row\n", true},
		{"valid row", header + validRow, false},
		{
			"malformed rows skipped",
			header + validRow + "S00002,not-a-date,Books,x,South,Southbridge,Seller 01,Voucher,C1,1,1,1,0.1,1,completed\n",
			false,
		},
		{
			"bad status rejected",
			header + "S00001,2024-01-15,Books,x,South,Southbridge,Seller 01,Voucher,C1,20.00,2,40.00,0.10,36.00,shipped\n",
			true,
		},
		{
			"discount out of range rejected",
			header + "S00001,2024-01-15,Books,x,South,Southbridge,Seller 01,Voucher,C1,20.00,2,40.00,1.50,36.00,completed\n",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.csv)

			_, err := Load(context.Background(), path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SkipsMalformedKeepsValid(t *testing.T) {
	content := csvHeader + "\n" +
		"S00001,2024-01-15,Books,Books Item 1,South,Southbridge,Seller 01,Voucher,C1,20.00,2,40.00,0.10,36.00,completed\n" +
		"broken\n" +
		"S00003,2024-02-01,Toys,Toys Item 3,North,Rivermouth,Seller 02,Credit Card,C2,30.00,1,30.00,0.00,30.00,pending\n"

	sales, err := Load(context.Background(), writeTempCSV(t, content))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(sales) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(sales))
	}
	if sales[0].ID != "S00001" || sales[1].ID != "S00003" {
		t.Errorf("valid rows out of order: %s, %s", sales[0].ID, sales[1].ID)
	}
	if sales[1].Status != models.StatusPending {
		t.Errorf("status = %s, want pending", sales[1].Status)
	}
}

func TestLoad_ContextCancelled(t *testing.T) {
	sales := GenerateFrom(100, 42, testEnd)
	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := Save(path, sales); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, path); err == nil {
		t.Error("cancelled context should abort the load")
	}
}

func TestLoadOrGenerate_GeneratesWhenMissing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	path := filepath.Join(t.TempDir(), "data", "sales.csv")

	sales, err := LoadOrGenerate(context.Background(), logger, Options{
		File:    path,
		Records: 50,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("LoadOrGenerate() failed: %v", err)
	}
	if len(sales) != 50 {
		t.Errorf("generated %d records, want 50", len(sales))
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("generated dataset should be persisted: %v", err)
	}

	// Second call loads the persisted file instead of regenerating.
	again, err := LoadOrGenerate(context.Background(), logger, Options{
		File:    path,
		Records: 50,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("second LoadOrGenerate() failed: %v", err)
	}
	if len(again) != len(sales) {
		t.Errorf("reload returned %d records, want %d", len(again), len(sales))
	}
}

func TestParseSale_DateOnly(t *testing.T) {
	record := []string{
		"S00001", "2024-03-09", "Books", "Books Item 1", "South", "Southbridge",
		"Seller 01", "Voucher", "C1234", "20.00", "2", "40.00", "0.10", "36.00", "completed",
	}

	sale, err := parseSale(record)
	if err != nil {
		t.Fatalf("parseSale() failed: %v", err)
	}
	if !sale.Date.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", sale.Date)
	}
	if sale.Amount != 36 || sale.Quantity != 2 {
		t.Errorf("parsed values wrong: %+v", sale)
	}
}
