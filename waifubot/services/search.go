package services

import (
	"context"
	"strings"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/Nikhil2005306/waifu-bot/waifubot/database/repositories"
	"github.com/sahilm/fuzzy"
)

// cardSearchItems implements fuzzy.Source over the card catalog
type cardSearchItems []*models.WaifuCard

func (s cardSearchItems) String(i int) string {
	return strings.ToLower(s[i].Name)
}

func (s cardSearchItems) Len() int {
	return len(s)
}

type CardSearchService struct {
	cards repositories.CardRepository
}

func NewCardSearchService(cards repositories.CardRepository) *CardSearchService {
	return &CardSearchService{cards: cards}
}

// SearchByName fuzzy-matches the query against card names and returns
// up to limit cards, best match first.
func (s *CardSearchService) SearchByName(ctx context.Context, query string, limit int) ([]*models.WaifuCard, error) {
	all, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := cardSearchItems(all)
	normalized := strings.ToLower(strings.TrimSpace(query))
	matches := fuzzy.FindFrom(normalized, items)

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*models.WaifuCard, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index]
	}
	return results, nil
}

// FindOne returns the single best match for the query, or nil when
// nothing matches.
func (s *CardSearchService) FindOne(ctx context.Context, query string) (*models.WaifuCard, error) {
	results, err := s.SearchByName(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
