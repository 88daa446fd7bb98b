package waifubot

import (
	"context"
	"log/slog"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database"
	"github.com/Nikhil2005306/waifu-bot/waifubot/database/repositories"
	"github.com/Nikhil2005306/waifu-bot/waifubot/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Bot aggregates the stores the command-handling layer consumes. The
// Telegram transport itself lives outside this repository.
type Bot struct {
	Cfg     Config
	Version string
	Commit  string

	DB                *database.DB
	UserRepository    repositories.UserRepository
	ProfileRepository repositories.ProfileRepository
	GroupRepository   repositories.GroupRepository
	LogRepository     repositories.LogRepository
	CardRepository    repositories.CardRepository
	MediaService      *services.MediaService
	SearchService     *services.CardSearchService
}

// SetupStores opens the database, runs the idempotent schema bootstrap
// and wires every repository and service. Bootstrap failure is fatal;
// no store may serve operations against a partial schema.
func (b *Bot) SetupStores(ctx context.Context) error {
	db, err := database.Open(b.Cfg.DB)
	if err != nil {
		return err
	}

	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return err
	}

	bunDB := db.BunDB()
	b.DB = db
	b.UserRepository = repositories.NewUserRepository(bunDB)
	b.ProfileRepository = repositories.NewProfileRepository(bunDB)
	b.GroupRepository = repositories.NewGroupRepository(bunDB)
	b.LogRepository = repositories.NewLogRepository(bunDB)
	b.CardRepository = repositories.NewCardRepository(bunDB)
	b.MediaService = services.NewMediaService(
		b.Cfg.Spaces.Key,
		b.Cfg.Spaces.Secret,
		b.Cfg.Spaces.Region,
		b.Cfg.Spaces.Bucket,
		b.Cfg.Spaces.MediaRoot,
	)
	b.SearchService = services.NewCardSearchService(b.CardRepository)

	slog.Info("Stores wired",
		slog.String("type", "db"),
		slog.String("path", b.Cfg.DB.Path))
	return nil
}

func (b *Bot) Close() {
	if b.DB != nil {
		b.DB.Close()
	}
}
