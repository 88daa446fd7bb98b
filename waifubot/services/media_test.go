package services

import (
	"testing"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/stretchr/testify/require"
)

func TestMediaKey(t *testing.T) {
	svc := &MediaService{bucket: "waifu-media", region: "nyc3", root: "cards"}

	card := &models.WaifuCard{ID: 17, Rarity: "Legendary", MediaType: "video"}
	require.Equal(t, "cards/legendary/17.mp4", svc.MediaKey(card))

	card = &models.WaifuCard{ID: 3, Rarity: "Rare", MediaType: "animation"}
	require.Equal(t, "cards/rare/3.gif", svc.MediaKey(card))

	// Unknown and empty media types fall back to jpg
	card = &models.WaifuCard{ID: 9, Rarity: "Common"}
	require.Equal(t, "cards/common/9.jpg", svc.MediaKey(card))
}

func TestMediaURL(t *testing.T) {
	svc := &MediaService{bucket: "waifu-media", region: "nyc3", root: "cards"}

	require.Equal(t,
		"https://waifu-media.nyc3.digitaloceanspaces.com/cards/rare/3.gif",
		svc.MediaURL("cards/rare/3.gif"))
}
