// Package report renders the maintenance period export.
package report

import (
	"encoding/csv"
	"io"

	"github.com/guardsys/guardsys/internal/maintenance"
)

// Header is the fixed column set of the period export, kept stable for
// downstream consumers.
var Header = []string{"responsible", "asset", "next_due", "overdue"}

// WriteCSV writes one row per maintenance event. The overdue column reflects
// the stored flag as of the last sweep, not a live recomputation: the
// export is a snapshot of what the system believed when it last swept.
//
// Period parameters (year/month) are accepted by the callers for
// compatibility but do not filter the event set; every event is exported.
func WriteCSV(w io.Writer, items []maintenance.SweepItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, it := range items {
		overdue := "no"
		if it.Event.IsOverdue {
			overdue = "yes"
		}
		row := []string{
			it.ResponsibleName,
			it.AssetName,
			it.Event.NextDueAt.Format("2006-01-02"),
			overdue,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
