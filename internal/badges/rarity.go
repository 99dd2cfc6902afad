package badges

// Rarity represents the difficulty tier of a badge.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// StreakRarity returns the rarity for a given streak length.
func StreakRarity(length int) Rarity {
	switch {
	case length >= 20:
		return RarityLegendary
	case length >= 15:
		return RarityEpic
	case length >= 10:
		return RarityRare
	default:
		return RarityCommon
	}
}

// XPRarity returns the rarity for a lifetime XP milestone.
func XPRarity(xp int) Rarity {
	switch {
	case xp >= 5000:
		return RarityLegendary
	case xp >= 1000:
		return RarityEpic
	case xp >= 500:
		return RarityRare
	default:
		return RarityCommon
	}
}
