package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupAddAndCount(t *testing.T) {
	db := testDB(t)
	repo := NewGroupRepository(db.BunDB())
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	require.NoError(t, repo.Add(ctx, -100123, "Waifu Collectors"))
	require.NoError(t, repo.Add(ctx, -100456, "Card Traders"))

	// Re-adding a known group is a no-op
	require.NoError(t, repo.Add(ctx, -100123, "Renamed Group"))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestLogEvent(t *testing.T) {
	db := testDB(t)
	repo := NewLogRepository(db.BunDB())
	ctx := context.Background()

	require.NoError(t, repo.LogEvent(ctx, "claim", 42, -100123, "daily claim"))
	require.NoError(t, repo.LogEvent(ctx, "startup", 0, 0, ""))

	var rows []struct {
		EventType string
		UserID    *int64
		ChatID    *int64
	}
	err := db.BunDB().NewSelect().
		TableExpr("logs").
		Column("event_type", "user_id", "chat_id").
		Order("id ASC").
		Scan(ctx, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "claim", rows[0].EventType)
	require.NotNil(t, rows[0].UserID)
	require.Equal(t, int64(42), *rows[0].UserID)

	// Zero ids land as NULL
	require.Equal(t, "startup", rows[1].EventType)
	require.Nil(t, rows[1].UserID)
	require.Nil(t, rows[1].ChatID)
}
