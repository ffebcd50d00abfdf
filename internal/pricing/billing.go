package pricing

import (
	"math"
	"time"
)

// FallbackBillingDays is used whenever the invoice's billing window is
// missing, unparseable or out of range.
const FallbackBillingDays = 30

const dateLayout = "2006-01-02"

// BillingDays resolves how many days an invoice covers from its stated
// start and end dates. The absolute difference in whole days is returned
// when it lands in (0, 366); anything else degrades silently to the
// 30-day fallback. Never fails.
//
// The same day count must be threaded through both the current and
// proposed side of a simulation: annualizing the two sides with different
// day counts would corrupt the savings figure.
func BillingDays(start, end string) int {
	s, err := parseDate(start)
	if err != nil {
		return FallbackBillingDays
	}
	e, err := parseDate(end)
	if err != nil {
		return FallbackBillingDays
	}

	days := int(math.Ceil(math.Abs(e.Sub(s).Hours()) / 24))
	if days > 0 && days < 366 {
		return days
	}
	return FallbackBillingDays
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// AnnualCost projects a period total to a full-year figure via the one
// canonical formula: (periodTotal / billingDays) × 365, rounded to cents.
// Every annual total in a simulation goes through here; no other code
// path derives an annual figure.
func AnnualCost(periodTotal float64, billingDays int) float64 {
	if billingDays <= 0 {
		return 0
	}
	return round2(periodTotal / float64(billingDays) * 365)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
