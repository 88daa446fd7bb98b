package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID    int64     `bun:"user_id,pk"`
	Username  string    `bun:"username,nullzero"`
	FirstName string    `bun:"first_name,nullzero"`
	Language  string    `bun:"language,nullzero,notnull,default:'en'"`
	JoinedAt  time.Time `bun:"joined_at,nullzero,notnull,default:current_timestamp"`

	// Crystal counters, one per claim category
	DailyCrystals   int64 `bun:"daily_crystals,notnull,default:0"`
	WeeklyCrystals  int64 `bun:"weekly_crystals,notnull,default:0"`
	MonthlyCrystals int64 `bun:"monthly_crystals,notnull,default:0"`

	// Last-claim timestamps stored as ISO-8601 text so that the
	// lexicographic maximum is also the chronological maximum
	DailyClaim   sql.NullString `bun:"daily_claim"`
	WeeklyClaim  sql.NullString `bun:"weekly_claim"`
	MonthlyClaim sql.NullString `bun:"monthly_claim"`

	FirstLogged bool `bun:"first_logged,notnull,default:0"`
}

// Crystals returns the counter for one category. The caller must have
// validated the category.
func (u *User) Crystals(c ClaimCategory) int64 {
	switch c {
	case ClaimDaily:
		return u.DailyCrystals
	case ClaimWeekly:
		return u.WeeklyCrystals
	case ClaimMonthly:
		return u.MonthlyCrystals
	}
	return 0
}

// Claim returns the stored claim timestamp for one category, or "" when
// it was never set.
func (u *User) Claim(c ClaimCategory) string {
	var v sql.NullString
	switch c {
	case ClaimDaily:
		v = u.DailyClaim
	case ClaimWeekly:
		v = u.WeeklyClaim
	case ClaimMonthly:
		v = u.MonthlyClaim
	}
	if !v.Valid {
		return ""
	}
	return v.String
}

// LastClaim returns the latest claim timestamp across all categories,
// or "" when no category was ever claimed.
func (u *User) LastClaim() string {
	var last string
	for _, c := range ClaimCategories() {
		if ts := u.Claim(c); ts > last {
			last = ts
		}
	}
	return last
}

// TotalCrystals is the sum of the three counters.
func (u *User) TotalCrystals() int64 {
	return u.DailyCrystals + u.WeeklyCrystals + u.MonthlyCrystals
}
