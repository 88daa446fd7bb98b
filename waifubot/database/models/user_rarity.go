package models

import "github.com/uptrace/bun"

// UserRarity counts collected cards per (user, rarity). The count is
// strictly additive; writes increment, never overwrite.
type UserRarity struct {
	bun.BaseModel `bun:"table:user_rarities,alias:ur"`

	UserID int64  `bun:"user_id,pk"`
	Rarity string `bun:"rarity,pk"`
	Count  int64  `bun:"count,notnull,default:0"`
}
