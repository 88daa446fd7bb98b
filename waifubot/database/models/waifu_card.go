package models

import (
	"time"

	"github.com/uptrace/bun"
)

type WaifuCard struct {
	bun.BaseModel `bun:"table:waifu_cards,alias:wc"`

	ID     int64  `bun:"id,pk,autoincrement"`
	Name   string `bun:"name,notnull"`
	Anime  string `bun:"anime,nullzero"`
	Rarity string `bun:"rarity,notnull"`
	Event  string `bun:"event,nullzero"`

	// Media stored in the Spaces bucket; MediaFileID is the
	// Telegram-side file id once the media was sent at least once
	MediaType   string `bun:"media_type,nullzero"`
	MediaFile   string `bun:"media_file,nullzero"`
	MediaFileID string `bun:"media_file_id,nullzero"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
