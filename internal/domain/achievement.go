package domain

// Rarity - badge rarity tier
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Achievement is a badge that can be minted (claimed) exactly once.
// Minted never reverts and MintDate is stamped at the transition.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Minted      bool   `json:"minted"`
	MintDate    string `json:"mintDate,omitempty"`
	Rarity      Rarity `json:"rarity"`
}
