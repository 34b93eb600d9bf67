package core

import "time"

// Freshness is the classification of an item relative to its expiry date.
type Freshness string

const (
	Expired      Freshness = "Expired"
	ExpiringSoon Freshness = "ExpiringSoon"
	Fresh        Freshness = "Fresh"
)

// Policy constants. These are deliberately not configurable: every freshness
// and eligibility decision in the system routes through this file so the
// thresholds cannot drift between the alert feed, the suggestion feed, and
// the dashboard.
const (
	// expiringSoonDays is the alert window: an item expiring within this
	// many days (inclusive, today counts) is ExpiringSoon.
	expiringSoonDays = 3

	// redistributionDays is the lookahead window for redistribution
	// suggestions. Strictly after today, up to and including today+N.
	redistributionDays = 7

	// redistributionMinQuantity is the strict lower bound on quantity for a
	// redistribution suggestion. quantity must exceed this value.
	redistributionMinQuantity = 10
)

// dateOnly truncates t to its calendar day in UTC so that classification is
// insensitive to time-of-day and timezone of the inputs.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify maps an expiry date and the current date to a Freshness state.
//
//	expiry <  today            → Expired
//	today <= expiry <= today+3 → ExpiringSoon
//	otherwise                  → Fresh
func Classify(expiry, today time.Time) Freshness {
	e, t := dateOnly(expiry), dateOnly(today)
	switch {
	case e.Before(t):
		return Expired
	case !e.After(t.AddDate(0, 0, expiringSoonDays)):
		return ExpiringSoon
	default:
		return Fresh
	}
}

// IsRedistributionCandidate reports whether an item should be suggested for
// redistribution: more than 10 units on hand and expiring within the next
// 7 days, but not yet due today. An item expiring today goes to the waste or
// alert path instead — there is no time left to move it.
func IsRedistributionCandidate(item Item, today time.Time) bool {
	if item.Quantity <= redistributionMinQuantity {
		return false
	}
	e, t := dateOnly(item.ExpiryDate), dateOnly(today)
	return e.After(t) && !e.After(t.AddDate(0, 0, redistributionDays))
}
