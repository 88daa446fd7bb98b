package repositories

import (
	"context"
	"testing"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_Missing(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	profile, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestUpsertProfile_AppliesDefaults(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	require.NoError(t, repo.UpsertProfile(ctx, 1, models.ProfileFields{Level: intPtr(5)}))

	profile, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Equal(t, 5, profile.Level)
	require.Equal(t, models.DefaultRank, profile.Rank)
	require.Equal(t, models.DefaultBadge, profile.Badge)
	require.Equal(t, models.DefaultGlobalPosition, profile.GlobalPosition)
	require.Equal(t, int64(0), profile.TotalCollected)
	require.Equal(t, int64(0), profile.Balance)
}

func TestUpsertProfile_ResetsOmittedFields(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	require.NoError(t, repo.UpsertProfile(ctx, 1, models.ProfileFields{
		Level:   intPtr(3),
		Rank:    strPtr("Master"),
		Balance: int64Ptr(1000),
	}))

	// Re-upserting with only level must reset rank and balance to their
	// defaults, not keep the stored values
	require.NoError(t, repo.UpsertProfile(ctx, 1, models.ProfileFields{Level: intPtr(9)}))

	profile, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 9, profile.Level)
	require.Equal(t, models.DefaultRank, profile.Rank)
	require.Equal(t, int64(0), profile.Balance)
}

func TestUpsertProfile_Idempotent(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	fields := models.ProfileFields{
		Level:          intPtr(2),
		Badge:          strPtr("Starter"),
		TotalCollected: int64Ptr(12),
	}
	require.NoError(t, repo.UpsertProfile(ctx, 1, fields))
	first, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertProfile(ctx, 1, fields))
	second, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestIncrementRarity(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementRarity(ctx, 1, "Legendary", 1))
	}

	require.NoError(t, repo.UpsertProfile(ctx, 1, models.ProfileFields{}))
	profile, err := repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), profile.Rarities["Legendary"])

	// First write for a new pair initializes at the supplied amount
	require.NoError(t, repo.IncrementRarity(ctx, 1, "Rare", 4))
	profile, err = repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(4), profile.Rarities["Rare"])

	// Negative amounts pass through arithmetically
	require.NoError(t, repo.IncrementRarity(ctx, 1, "Rare", -2))
	profile, err = repo.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), profile.Rarities["Rare"])
}

func TestGetProfile_RarityRowsAloneDoNotCreateProfile(t *testing.T) {
	db := testDB(t)
	repo := NewProfileRepository(db.BunDB())
	ctx := context.Background()

	require.NoError(t, repo.IncrementRarity(ctx, 2, "Epic", 1))

	profile, err := repo.GetProfile(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestGetRarityCount(t *testing.T) {
	db := testDB(t)
	profiles := NewProfileRepository(db.BunDB())
	cards := NewCardRepository(db.BunDB())
	ctx := context.Background()

	legendary1 := &models.WaifuCard{Name: "Rem", Anime: "Re:Zero", Rarity: "Legendary"}
	legendary2 := &models.WaifuCard{Name: "Ram", Anime: "Re:Zero", Rarity: "Legendary"}
	rare := &models.WaifuCard{Name: "Emilia", Anime: "Re:Zero", Rarity: "Rare"}
	require.NoError(t, cards.Create(ctx, legendary1))
	require.NoError(t, cards.Create(ctx, legendary2))
	require.NoError(t, cards.Create(ctx, rare))

	require.NoError(t, cards.AddCardToUser(ctx, 1, legendary1.ID, 2))
	require.NoError(t, cards.AddCardToUser(ctx, 1, legendary2.ID, 3))
	require.NoError(t, cards.AddCardToUser(ctx, 1, rare.ID, 1))

	count, err := profiles.GetRarityCount(ctx, 1, "Legendary")
	require.NoError(t, err)
	require.Equal(t, int64(5), count)

	count, err = profiles.GetRarityCount(ctx, 1, "Rare")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// No matching rows yields 0, not an error
	count, err = profiles.GetRarityCount(ctx, 1, "Mythic")
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	count, err = profiles.GetRarityCount(ctx, 2, "Legendary")
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
