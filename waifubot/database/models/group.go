package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ChatID  int64     `bun:"chat_id,pk"`
	Title   string    `bun:"title,nullzero"`
	AddedAt time.Time `bun:"added_at,nullzero,notnull,default:current_timestamp"`
}
