package calendar

import (
	"fmt"
	"time"
)

// PlanUnderflowError means an active day needed a plan entry but the
// cursor was exhausted: the plan file is shorter than the configured range.
type PlanUnderflowError struct {
	Date time.Time
	// Needed is the 1-based index of the entry that was missing.
	Needed int
	Err    error
}

func (e *PlanUnderflowError) Error() string {
	return fmt.Sprintf("calendar: reading plan exhausted on %s (entry %d needed)", e.Date.Format("2006-01-02"), e.Needed)
}

func (e *PlanUnderflowError) Unwrap() error { return e.Err }
