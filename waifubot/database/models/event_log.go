package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// EventLog rows are append-only; nothing in the store updates or
// deletes them.
type EventLog struct {
	bun.BaseModel `bun:"table:logs,alias:l"`

	ID        int64         `bun:"id,pk,autoincrement"`
	EventType string        `bun:"event_type,notnull"`
	UserID    sql.NullInt64 `bun:"user_id"`
	ChatID    sql.NullInt64 `bun:"chat_id"`
	Details   string        `bun:"details,nullzero"`
	Timestamp time.Time     `bun:"timestamp,nullzero,notnull,default:current_timestamp"`
}
