package models

import "manifest-resolver/core/manifest"

// Item is the hydrated view of an inventory item.
type Item struct {
	Hash                uint32                      `json:"hash"`
	DisplayProperties   *manifest.DisplayProperties `json:"displayProperties"`
	ItemTypeDisplayName string                      `json:"itemTypeDisplayName"`
	FlavorText          string                      `json:"flavorText"`
	Stats               *Stats                      `json:"stats,omitempty"`
	Perks               []Perk                      `json:"perks"`
	RandomPerkColumns   [][]Perk                    `json:"randomPerkColumns"`
}

// Stats is the item's stat block, keyed by stat id as stored.
type Stats struct {
	Stats map[string]Stat `json:"stats"`
}

// Stat is a stat entry with the stat definition's display metadata attached.
// DisplayProperties is nil when the stat definition could not be resolved.
type Stat struct {
	StatHash          uint32                      `json:"statHash"`
	Value             float64                     `json:"value"`
	DisplayProperties *manifest.DisplayProperties `json:"displayProperties,omitempty"`
}

// Perk is a plug item reduced to what the presentation layer renders.
type Perk struct {
	Hash              uint32                      `json:"hash"`
	DisplayProperties *manifest.DisplayProperties `json:"displayProperties"`
}
