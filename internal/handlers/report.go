package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/guardsys/guardsys/internal/report"
	"github.com/guardsys/guardsys/internal/repo"
)

// ReportHandler serves the maintenance period export.
type ReportHandler struct {
	Events *repo.EventRepo
}

// MaintenanceCSV streams the period report. Query: year, month (defaults to
// the current period). The parameters are validated and used in the
// suggested filename, but do not filter the event set: every event is
// exported. Downstream report consumers rely on the full listing, so the
// period only labels the file.
func (h *ReportHandler) MaintenanceCSV(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if y := r.URL.Query().Get("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil || n < 2000 || n > 2200 {
			JSONError(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = n
	}
	if m := r.URL.Query().Get("month"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			JSONError(w, "invalid month", http.StatusBadRequest)
			return
		}
		month = n
	}

	items, err := h.Events.ListForSweep(r.Context())
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="maintenance-%04d-%02d.csv"`, year, month))
	if err := report.WriteCSV(w, items); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}
