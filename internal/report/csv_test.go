package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/models"
)

func TestWriteCSV(t *testing.T) {
	due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	items := []maintenance.SweepItem{
		{
			Event:           models.MaintenanceEvent{NextDueAt: due, IsOverdue: true},
			AssetName:       "Warehouse 4",
			ResponsibleName: "ivanov",
		},
		{
			Event:           models.MaintenanceEvent{NextDueAt: due.AddDate(0, 0, 30)},
			AssetName:       "Office 2",
			ResponsibleName: "petrov",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("row count: got %d, want 3", len(records))
	}
	if got, want := records[0], Header; got[0] != want[0] || got[3] != want[3] {
		t.Errorf("header: got %v", got)
	}
	if records[1][0] != "ivanov" || records[1][2] != "2024-03-01" || records[1][3] != "yes" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][3] != "no" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "responsible,asset,next_due,overdue\n" {
		t.Errorf("empty export should still carry the header, got %q", got)
	}
}
