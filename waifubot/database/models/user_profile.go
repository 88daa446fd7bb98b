package models

import "github.com/uptrace/bun"

// Documented profile defaults. An upsert merges caller-supplied fields
// over these, never over the previously stored row.
const (
	DefaultLevel          = 1
	DefaultRank           = "Newbie"
	DefaultBadge          = "None"
	DefaultGlobalPosition = "Unranked"
)

type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:up"`

	UserID         int64  `bun:"user_id,pk"`
	Level          int    `bun:"level,notnull,default:1"`
	Rank           string `bun:"rank,notnull,default:'Newbie'"`
	Badge          string `bun:"badge,notnull,default:'None'"`
	TotalCollected int64  `bun:"total_collected,notnull,default:0"`
	Progress       int64  `bun:"progress,notnull,default:0"`
	Balance        int64  `bun:"balance,notnull,default:0"`
	GlobalPosition string `bun:"global_position,notnull,default:'Unranked'"`
}

// ProfileFields carries the caller-supplied values for a profile upsert.
// A nil field means "reset to the documented default", not "keep the
// stored value" - callers wanting partial preservation must read first.
type ProfileFields struct {
	Level          *int
	Rank           *string
	Badge          *string
	TotalCollected *int64
	Progress       *int64
	Balance        *int64
	GlobalPosition *string
}

// NewProfileWithDefaults builds the full row an upsert writes: defaults
// first, then whatever the caller supplied.
func NewProfileWithDefaults(userID int64, f ProfileFields) *UserProfile {
	p := &UserProfile{
		UserID:         userID,
		Level:          DefaultLevel,
		Rank:           DefaultRank,
		Badge:          DefaultBadge,
		GlobalPosition: DefaultGlobalPosition,
	}
	if f.Level != nil {
		p.Level = *f.Level
	}
	if f.Rank != nil {
		p.Rank = *f.Rank
	}
	if f.Badge != nil {
		p.Badge = *f.Badge
	}
	if f.TotalCollected != nil {
		p.TotalCollected = *f.TotalCollected
	}
	if f.Progress != nil {
		p.Progress = *f.Progress
	}
	if f.Balance != nil {
		p.Balance = *f.Balance
	}
	if f.GlobalPosition != nil {
		p.GlobalPosition = *f.GlobalPosition
	}
	return p
}
