package manifest

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Table names a partition of the definition store.
type Table string

const (
	TableInventoryItem Table = "DestinyInventoryItemDefinition"
	TableStat          Table = "DestinyStatDefinition"
	TablePlugSet       Table = "DestinyPlugSetDefinition"
)

// Tables lists every table the resolver reads.
var Tables = []Table{TableInventoryItem, TableStat, TablePlugSet}

// DisplayProperties is the presentation block shared by all definitions.
type DisplayProperties struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description"`
	HasIcon     bool   `json:"hasIcon"`
}

// IsEmpty reports whether d is absent or carries no data at all.
func (d *DisplayProperties) IsEmpty() bool {
	return d == nil || *d == DisplayProperties{}
}

// StatValue is one entry of an item's stat block.
type StatValue struct {
	StatHash uint32  `json:"statHash"`
	Value    float64 `json:"value"`
}

// ItemStats is the stat block of an item, keyed by stat id.
type ItemStats struct {
	Stats map[string]StatValue `json:"stats"`
}

// SocketEntry is one attachment point on an item. Zero hashes mean absent.
type SocketEntry struct {
	SocketTypeHash        uint32 `json:"socketTypeHash,omitempty"`
	SingleInitialItemHash uint32 `json:"singleInitialItemHash,omitempty"`
	ReusablePlugSetHash   uint32 `json:"reusablePlugSetHash,omitempty"`
	RandomizedPlugSetHash uint32 `json:"randomizedPlugSetHash,omitempty"`
}

// PlugSetHash returns the plug set offered by the socket, preferring the
// reusable set over the randomized one. Zero means the socket has none.
func (e SocketEntry) PlugSetHash() uint32 {
	if e.ReusablePlugSetHash != 0 {
		return e.ReusablePlugSetHash
	}
	return e.RandomizedPlugSetHash
}

// ItemSockets is the socket block of an item.
type ItemSockets struct {
	SocketEntries []SocketEntry `json:"socketEntries"`
}

// ItemDefinition is a record of the inventory item table.
type ItemDefinition struct {
	Hash                uint32             `json:"hash"`
	DisplayProperties   *DisplayProperties `json:"displayProperties,omitempty"`
	ItemTypeDisplayName string             `json:"itemTypeDisplayName"`
	FlavorText          string             `json:"flavorText,omitempty"`
	Stats               *ItemStats         `json:"stats,omitempty"`
	Sockets             *ItemSockets       `json:"sockets,omitempty"`

	// Category is ItemTypeDisplayName classified by the snapshot taxonomy.
	Category Category `json:"-"`
	// LabelCategory is set only when ItemTypeDisplayName is a taxonomy label verbatim.
	LabelCategory Category `json:"-"`
}

// StatDefinition is a record of the stat table.
type StatDefinition struct {
	Hash              uint32             `json:"hash"`
	DisplayProperties *DisplayProperties `json:"displayProperties,omitempty"`
}

// PlugSetItem references one plug offered by a plug set.
type PlugSetItem struct {
	PlugItemHash uint32 `json:"plugItemHash"`
}

// PlugSetDefinition is a record of the plug set table.
type PlugSetDefinition struct {
	Hash              uint32        `json:"hash"`
	ReusablePlugItems []PlugSetItem `json:"reusablePlugItems"`
}

func (d *ItemDefinition) key() *uint32    { return &d.Hash }
func (d *StatDefinition) key() *uint32    { return &d.Hash }
func (d *PlugSetDefinition) key() *uint32 { return &d.Hash }

// definition is implemented by pointers to the record types above.
type definition[T any] interface {
	*T
	key() *uint32
}

// decode parses a stored document and checks that its hash matches the key
// it is stored under. A missing hash is filled in from the key.
func decode[T any, P definition[T]](id uint32, data []byte) (*T, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	h := P(&rec).key()
	switch *h {
	case 0:
		*h = id
	case id:
	default:
		return nil, fmt.Errorf("hash %d does not match key %d", *h, id)
	}
	return &rec, nil
}
