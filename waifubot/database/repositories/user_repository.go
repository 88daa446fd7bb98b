package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/uptrace/bun"
)

// CrystalGrant is one accrual against a single category. Several grants
// may be applied in one call; they commit in a single transaction.
type CrystalGrant struct {
	Category models.ClaimCategory
	Amount   int64
}

// CrystalBalance is the derived view a balance query returns. LastClaim
// is the latest ISO-8601 claim timestamp across all categories, or ""
// when the user never claimed (or does not exist).
type CrystalBalance struct {
	Daily     int64
	Weekly    int64
	Monthly   int64
	Total     int64
	LastClaim string
}

type UserRepository interface {
	Register(ctx context.Context, userID int64, username, firstName string) error
	AddCrystals(ctx context.Context, userID int64, grants ...CrystalGrant) error
	GetCrystals(ctx context.Context, userID int64) (CrystalBalance, error)
	GetLastClaim(ctx context.Context, userID int64, category models.ClaimCategory) (string, error)
	SetLastClaim(ctx context.Context, userID int64, category models.ClaimCategory, timeISO string) error
	IsFirstLogged(ctx context.Context, userID int64) (bool, error)
	SetFirstLogged(ctx context.Context, userID int64) error
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

// Register creates the identity row if absent. Re-registering is a
// no-op and keeps the originally stored metadata.
func (r *userRepository) Register(ctx context.Context, userID int64, username, firstName string) error {
	user := &models.User{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		JoinedAt:  time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to register user %d: %w", userID, err)
	}
	return nil
}

// AddCrystals applies every grant atomically. The identity row is
// created lazily when missing, so accrual against an unregistered user
// succeeds. All categories are validated before anything is written.
func (r *userRepository) AddCrystals(ctx context.Context, userID int64, grants ...CrystalGrant) error {
	for _, g := range grants {
		if !g.Category.Valid() {
			return fmt.Errorf("add crystals for user %d: %w: %q", userID, models.ErrInvalidCategory, g.Category)
		}
	}
	if len(grants) == 0 {
		return nil
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		stub := &models.User{UserID: userID, JoinedAt: time.Now()}
		if _, err := tx.NewInsert().
			Model(stub).
			On("CONFLICT (user_id) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to ensure user %d: %w", userID, err)
		}

		for _, g := range grants {
			q := tx.NewUpdate().
				Model((*models.User)(nil)).
				Where("user_id = ?", userID)

			// Fixed column per category; caller strings never reach
			// the query text.
			switch g.Category {
			case models.ClaimDaily:
				q = q.Set("daily_crystals = daily_crystals + ?", g.Amount)
			case models.ClaimWeekly:
				q = q.Set("weekly_crystals = weekly_crystals + ?", g.Amount)
			case models.ClaimMonthly:
				q = q.Set("monthly_crystals = monthly_crystals + ?", g.Amount)
			}

			if _, err := q.Exec(ctx); err != nil {
				return fmt.Errorf("failed to add %s crystals for user %d: %w", g.Category, userID, err)
			}
		}
		return nil
	})
}

// GetCrystals returns the current counters and the derived total and
// last-claim timestamp. Unknown users yield the zero balance, never an
// error.
func (r *userRepository) GetCrystals(ctx context.Context, userID int64) (CrystalBalance, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CrystalBalance{}, nil
		}
		slog.Error("Database error when getting crystals",
			slog.String("type", "db"),
			slog.String("operation", "GetCrystals"),
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return CrystalBalance{}, err
	}

	return CrystalBalance{
		Daily:     user.DailyCrystals,
		Weekly:    user.WeeklyCrystals,
		Monthly:   user.MonthlyCrystals,
		Total:     user.TotalCrystals(),
		LastClaim: user.LastClaim(),
	}, nil
}

// GetLastClaim returns the stored claim timestamp for one category, or
// "" when unset or the user is unknown.
func (r *userRepository) GetLastClaim(ctx context.Context, userID int64, category models.ClaimCategory) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("get last claim for user %d: %w: %q", userID, models.ErrInvalidCategory, category)
	}

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return user.Claim(category), nil
}

// SetLastClaim overwrites one category's claim timestamp. It does not
// validate ordering against the previous value and, unlike AddCrystals,
// it does not create a missing user row: a write against a nonexistent
// user affects zero rows and is not an error. Callers register users
// before recording claims.
func (r *userRepository) SetLastClaim(ctx context.Context, userID int64, category models.ClaimCategory, timeISO string) error {
	if !category.Valid() {
		return fmt.Errorf("set last claim for user %d: %w: %q", userID, models.ErrInvalidCategory, category)
	}

	q := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Where("user_id = ?", userID)

	switch category {
	case models.ClaimDaily:
		q = q.Set("daily_claim = ?", timeISO)
	case models.ClaimWeekly:
		q = q.Set("weekly_claim = ?", timeISO)
	case models.ClaimMonthly:
		q = q.Set("monthly_claim = ?", timeISO)
	}

	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set %s claim for user %d: %w", category, userID, err)
	}
	return nil
}

func (r *userRepository) IsFirstLogged(ctx context.Context, userID int64) (bool, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Column("first_logged").
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return user.FirstLogged, nil
}

func (r *userRepository) SetFirstLogged(ctx context.Context, userID int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("first_logged = ?", true).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}
