package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserWaifu is the ownership-quantity row joining users to cards.
type UserWaifu struct {
	bun.BaseModel `bun:"table:user_waifus,alias:uw"`

	UserID     int64     `bun:"user_id,pk"`
	WaifuID    int64     `bun:"waifu_id,pk"`
	Amount     int64     `bun:"amount,notnull,default:0"`
	ObtainedAt time.Time `bun:"obtained_at,nullzero,notnull,default:current_timestamp"`
}
