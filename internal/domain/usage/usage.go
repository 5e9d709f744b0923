// Package usage describes how much of the daily upstream request quota is spent.
package usage

// Report is a snapshot of quota usage for the current UTC day.
type Report struct {
	periodStart int64 // unix millis
	periodEnd   int64
	limit       int64
	used        int64
	remaining   int64
}

// NewReport creates a usage report. limit 0 means unlimited; remaining is
// then reported as -1.
func NewReport(start, end, limit, used, remaining int64) Report {
	return Report{
		periodStart: start,
		periodEnd:   end,
		limit:       limit,
		used:        used,
		remaining:   remaining,
	}
}

// PeriodStart returns the period start timestamp (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis). The counter resets then.
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Limit returns the request cap, 0 if unlimited.
func (r *Report) Limit() int64 { return r.limit }

// Used returns requests made in the period.
func (r *Report) Used() int64 { return r.used }

// Remaining returns requests left, -1 if unlimited.
func (r *Report) Remaining() int64 { return r.remaining }

// IsUnlimited reports whether no cap is configured.
func (r *Report) IsUnlimited() bool { return r.limit <= 0 }

// IsExhausted reports whether the cap is reached.
func (r *Report) IsExhausted() bool { return !r.IsUnlimited() && r.remaining <= 0 }
