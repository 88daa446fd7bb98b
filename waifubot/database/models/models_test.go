package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClaimCategoryValid(t *testing.T) {
	for _, c := range ClaimCategories() {
		require.True(t, c.Valid(), "category %q", c)
	}

	require.False(t, ClaimCategory("yearly").Valid())
	require.False(t, ClaimCategory("Daily").Valid())
	require.False(t, ClaimCategory("").Valid())
}

func TestUserLastClaim(t *testing.T) {
	u := &User{}
	require.Equal(t, "", u.LastClaim())

	u.DailyClaim = sql.NullString{String: "2024-01-01T00:00:00", Valid: true}
	require.Equal(t, "2024-01-01T00:00:00", u.LastClaim())

	// Lexicographic max over ISO-8601 text is the chronological max
	u.WeeklyClaim = sql.NullString{String: "2024-03-15T12:30:00", Valid: true}
	u.MonthlyClaim = sql.NullString{String: "2024-02-01T00:00:00", Valid: true}
	require.Equal(t, "2024-03-15T12:30:00", u.LastClaim())
}

func TestUserTotalCrystals(t *testing.T) {
	u := &User{DailyCrystals: 3, WeeklyCrystals: 2, MonthlyCrystals: 7}
	require.Equal(t, int64(12), u.TotalCrystals())
	require.Equal(t, int64(3), u.Crystals(ClaimDaily))
	require.Equal(t, int64(2), u.Crystals(ClaimWeekly))
	require.Equal(t, int64(7), u.Crystals(ClaimMonthly))
}

func TestNewProfileWithDefaults(t *testing.T) {
	p := NewProfileWithDefaults(42, ProfileFields{})
	require.Equal(t, int64(42), p.UserID)
	require.Equal(t, DefaultLevel, p.Level)
	require.Equal(t, DefaultRank, p.Rank)
	require.Equal(t, DefaultBadge, p.Badge)
	require.Equal(t, DefaultGlobalPosition, p.GlobalPosition)
	require.Equal(t, int64(0), p.TotalCollected)
	require.Equal(t, int64(0), p.Progress)
	require.Equal(t, int64(0), p.Balance)

	level := 10
	balance := int64(500)
	p = NewProfileWithDefaults(42, ProfileFields{Level: &level, Balance: &balance})
	require.Equal(t, 10, p.Level)
	require.Equal(t, int64(500), p.Balance)
	// Everything omitted stays at the documented default
	require.Equal(t, DefaultRank, p.Rank)
	require.Equal(t, DefaultBadge, p.Badge)
}
