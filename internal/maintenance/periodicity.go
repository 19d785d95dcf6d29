package maintenance

import (
	"errors"
	"fmt"
	"time"

	"github.com/guardsys/guardsys/internal/models"
)

// ErrBadInterval is returned for a CUSTOM periodicity with interval_days < 1.
var ErrBadInterval = errors.New("custom periodicity requires interval_days >= 1")

// ErrUnknownKind is returned for a periodicity kind outside the closed set.
var ErrUnknownKind = errors.New("unknown periodicity kind")

// ValidatePeriodicity checks a periodicity before it is stored or used.
func ValidatePeriodicity(p *models.Periodicity) error {
	switch p.Kind {
	case models.KindMonthly, models.KindQuarterly:
		return nil
	case models.KindCustom:
		if p.IntervalDays < 1 {
			return ErrBadInterval
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

// ComputeNextDue returns the next due date after ref for the given
// periodicity. MONTHLY and QUARTERLY use fixed 30 and 90 day offsets; the
// calendar month length is deliberately ignored. The result is always
// strictly after ref.
func ComputeNextDue(p *models.Periodicity, ref time.Time) (time.Time, error) {
	if err := ValidatePeriodicity(p); err != nil {
		return time.Time{}, err
	}
	switch p.Kind {
	case models.KindMonthly:
		return ref.AddDate(0, 0, 30), nil
	case models.KindQuarterly:
		return ref.AddDate(0, 0, 90), nil
	default:
		return ref.AddDate(0, 0, p.IntervalDays), nil
	}
}
