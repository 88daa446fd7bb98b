package models

import "errors"

// ErrInvalidCategory is returned when a claim category is outside the
// fixed daily/weekly/monthly set.
var ErrInvalidCategory = errors.New("invalid claim category")

// ClaimCategory identifies one of the three independent crystal counters.
type ClaimCategory string

const (
	ClaimDaily   ClaimCategory = "daily"
	ClaimWeekly  ClaimCategory = "weekly"
	ClaimMonthly ClaimCategory = "monthly"
)

// ClaimCategories returns the closed set of recognized categories.
func ClaimCategories() []ClaimCategory {
	return []ClaimCategory{ClaimDaily, ClaimWeekly, ClaimMonthly}
}

func (c ClaimCategory) Valid() bool {
	switch c {
	case ClaimDaily, ClaimWeekly, ClaimMonthly:
		return true
	}
	return false
}

func (c ClaimCategory) String() string {
	return string(c)
}
