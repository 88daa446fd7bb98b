package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database"
	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/Nikhil2005306/waifu-bot/waifubot/database/repositories"
	"github.com/stretchr/testify/require"
)

func searchFixture(t *testing.T) *CardSearchService {
	t.Helper()

	db, err := database.Open(database.DBConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.InitializeSchema(ctx))

	cards := repositories.NewCardRepository(db.BunDB())
	for _, c := range []*models.WaifuCard{
		{Name: "Rem", Anime: "Re:Zero", Rarity: "Legendary"},
		{Name: "Ram", Anime: "Re:Zero", Rarity: "Legendary"},
		{Name: "Megumin", Anime: "KonoSuba", Rarity: "Epic"},
		{Name: "Mikasa Ackerman", Anime: "Attack on Titan", Rarity: "Rare"},
	} {
		require.NoError(t, cards.Create(ctx, c))
	}

	return NewCardSearchService(cards)
}

func TestSearchByName(t *testing.T) {
	search := searchFixture(t)
	ctx := context.Background()

	results, err := search.SearchByName(ctx, "megumin", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "Megumin", results[0].Name)

	// Case-insensitive and typo-tolerant
	results, err = search.SearchByName(ctx, "MIKASA", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "Mikasa Ackerman", results[0].Name)

	results, err = search.SearchByName(ctx, "rem", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestFindOne(t *testing.T) {
	search := searchFixture(t)
	ctx := context.Background()

	card, err := search.FindOne(ctx, "megmin")
	require.NoError(t, err)
	require.NotNil(t, card)
	require.Equal(t, "Megumin", card.Name)

	card, err = search.FindOne(ctx, "xyzzy")
	require.NoError(t, err)
	require.Nil(t, card)
}
