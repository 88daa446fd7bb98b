package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.DBConfig{
		Path: filepath.Join(t.TempDir(), "waifu.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.InitializeSchema(context.Background()))
	return db
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
