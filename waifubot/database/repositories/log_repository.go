package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/uptrace/bun"
)

type LogRepository interface {
	// LogEvent appends one event row. Zero userID/chatID are stored as
	// NULL; Telegram never issues the zero id.
	LogEvent(ctx context.Context, eventType string, userID, chatID int64, details string) error
}

type logRepository struct {
	db *bun.DB
}

func NewLogRepository(db *bun.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) LogEvent(ctx context.Context, eventType string, userID, chatID int64, details string) error {
	entry := &models.EventLog{
		EventType: eventType,
		UserID:    sql.NullInt64{Int64: userID, Valid: userID != 0},
		ChatID:    sql.NullInt64{Int64: chatID, Valid: chatID != 0},
		Details:   details,
		Timestamp: time.Now(),
	}
	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("failed to log event %q: %w", eventType, err)
	}
	return nil
}
