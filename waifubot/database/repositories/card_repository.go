package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
)

const cardCacheSize = 512

type CardRepository interface {
	Create(ctx context.Context, card *models.WaifuCard) error
	GetByID(ctx context.Context, id int64) (*models.WaifuCard, error)
	GetAll(ctx context.Context) ([]*models.WaifuCard, error)
	GetByRarity(ctx context.Context, rarity string) ([]*models.WaifuCard, error)
	UpdateMedia(ctx context.Context, id int64, mediaType, mediaFile, mediaFileID string) error
	AddCardToUser(ctx context.Context, userID, cardID, amount int64) error
	GetUserCard(ctx context.Context, userID, cardID int64) (*models.UserWaifu, error)
}

type cardRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewCardRepository(db *bun.DB) CardRepository {
	cache, _ := lru.New(cardCacheSize)
	return &cardRepository{
		db:    db,
		cache: cache,
	}
}

func (r *cardRepository) Create(ctx context.Context, card *models.WaifuCard) error {
	card.CreatedAt = time.Now()
	if _, err := r.db.NewInsert().Model(card).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create card %q: %w", card.Name, err)
	}
	r.cache.Add(card.ID, card)
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.WaifuCard, error) {
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.WaifuCard), nil
	}

	card := new(models.WaifuCard)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "card", ID: id}
		}
		return nil, err
	}

	r.cache.Add(id, card)
	return card, nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.WaifuCard, error) {
	var cards []*models.WaifuCard
	err := r.db.NewSelect().
		Model(&cards).
		Order("id ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetByRarity(ctx context.Context, rarity string) ([]*models.WaifuCard, error) {
	var cards []*models.WaifuCard
	err := r.db.NewSelect().
		Model(&cards).
		Where("rarity = ?", rarity).
		Order("id ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) UpdateMedia(ctx context.Context, id int64, mediaType, mediaFile, mediaFileID string) error {
	_, err := r.db.NewUpdate().
		Model((*models.WaifuCard)(nil)).
		Set("media_type = ?", mediaType).
		Set("media_file = ?", mediaFile).
		Set("media_file_id = ?", mediaFileID).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update media for card %d: %w", id, err)
	}
	r.cache.Remove(id)
	return nil
}

// AddCardToUser adds amount copies of a card to a user's collection.
// First tries to bump an existing ownership row; when none is affected
// it inserts the initial row. Both steps run in one transaction.
func (r *cardRepository) AddCardToUser(ctx context.Context, userID, cardID, amount int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*models.UserWaifu)(nil)).
			Set("amount = amount + ?", amount).
			Where("user_id = ? AND waifu_id = ?", userID, cardID).
			Exec(ctx)
		if err != nil {
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if rowsAffected == 0 {
			userWaifu := &models.UserWaifu{
				UserID:     userID,
				WaifuID:    cardID,
				Amount:     amount,
				ObtainedAt: time.Now(),
			}
			if _, err := tx.NewInsert().Model(userWaifu).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create ownership row for user %d card %d: %w", userID, cardID, err)
			}
		}
		return nil
	})
}

func (r *cardRepository) GetUserCard(ctx context.Context, userID, cardID int64) (*models.UserWaifu, error) {
	userWaifu := new(models.UserWaifu)
	err := r.db.NewSelect().
		Model(userWaifu).
		Where("user_id = ? AND waifu_id = ?", userID, cardID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user card", ID: cardID}
		}
		return nil, err
	}
	return userWaifu, nil
}
