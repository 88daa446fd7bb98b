package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/uptrace/bun"
)

// Profile is the aggregate view a profile query returns: the stored row
// plus the rarity counts collected so far.
type Profile struct {
	Level          int
	Rank           string
	Badge          string
	TotalCollected int64
	Progress       int64
	Balance        int64
	GlobalPosition string
	Rarities       map[string]int64
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, userID int64, fields models.ProfileFields) error
	IncrementRarity(ctx context.Context, userID int64, rarity string, count int64) error
	GetRarityCount(ctx context.Context, userID int64, rarity string) (int64, error)
}

type profileRepository struct {
	db *bun.DB
}

func NewProfileRepository(db *bun.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetProfile returns the profile and rarity map, or nil when no profile
// row exists. Rarity rows alone do not make a profile exist.
func (r *profileRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	row := new(models.UserProfile)
	err := r.db.NewSelect().
		Model(row).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}

	var rarities []models.UserRarity
	if err := r.db.NewSelect().
		Model(&rarities).
		Where("user_id = ?", userID).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get rarities for user %d: %w", userID, err)
	}

	profile := &Profile{
		Level:          row.Level,
		Rank:           row.Rank,
		Badge:          row.Badge,
		TotalCollected: row.TotalCollected,
		Progress:       row.Progress,
		Balance:        row.Balance,
		GlobalPosition: row.GlobalPosition,
		Rarities:       make(map[string]int64, len(rarities)),
	}
	for _, ur := range rarities {
		profile.Rarities[ur.Rarity] = ur.Count
	}
	return profile, nil
}

// UpsertProfile writes the full row built from the documented defaults
// with the caller's fields merged on top. Omitted fields reset to their
// defaults rather than keeping the stored values; callers wanting
// partial preservation must read-then-write. Idempotent for identical
// inputs.
func (r *profileRepository) UpsertProfile(ctx context.Context, userID int64, fields models.ProfileFields) error {
	row := models.NewProfileWithDefaults(userID, fields)

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("level = EXCLUDED.level").
		Set("rank = EXCLUDED.rank").
		Set("badge = EXCLUDED.badge").
		Set("total_collected = EXCLUDED.total_collected").
		Set("progress = EXCLUDED.progress").
		Set("balance = EXCLUDED.balance").
		Set("global_position = EXCLUDED.global_position").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", userID, err)
	}
	return nil
}

// IncrementRarity adds count to the (user, rarity) counter, creating
// the row at count when absent. Always additive; a negative count
// passes through arithmetically.
func (r *profileRepository) IncrementRarity(ctx context.Context, userID int64, rarity string, count int64) error {
	row := &models.UserRarity{
		UserID: userID,
		Rarity: rarity,
		Count:  count,
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id, rarity) DO UPDATE").
		Set("count = count + EXCLUDED.count").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment rarity %q for user %d: %w", rarity, userID, err)
	}
	return nil
}

// GetRarityCount sums owned-card amounts for one user filtered by
// rarity, joining ownership rows against the card catalog. No matching
// rows yields 0.
func (r *profileRepository) GetRarityCount(ctx context.Context, userID int64, rarity string) (int64, error) {
	var count int64
	err := r.db.NewSelect().
		ColumnExpr("COALESCE(SUM(uw.amount), 0)").
		TableExpr("user_waifus AS uw").
		Join("JOIN waifu_cards AS wc ON wc.id = uw.waifu_id").
		Where("uw.user_id = ? AND wc.rarity = ?", userID, rarity).
		Scan(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rarity %q for user %d: %w", rarity, userID, err)
	}
	return count, nil
}
