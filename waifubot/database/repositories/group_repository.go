package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/uptrace/bun"
)

type GroupRepository interface {
	Add(ctx context.Context, chatID int64, title string) error
	Count(ctx context.Context) (int, error)
}

type groupRepository struct {
	db *bun.DB
}

func NewGroupRepository(db *bun.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Add records a group the bot joined; re-adding is a no-op.
func (r *groupRepository) Add(ctx context.Context, chatID int64, title string) error {
	group := &models.Group{
		ChatID:  chatID,
		Title:   title,
		AddedAt: time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(group).
		On("CONFLICT (chat_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add group %d: %w", chatID, err)
	}
	return nil
}

func (r *groupRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*models.Group)(nil)).
		Count(ctx)
}
