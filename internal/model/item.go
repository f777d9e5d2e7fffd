package model

import (
	"maps"
	"strconv"
	"time"
)

// InventoryItem is a tracked inventory record. Soft delete is terminal at
// the state level: DeletedAt is set and never cleared, but the record stays
// in the document so audit history keeps resolving.
type InventoryItem struct {
	ItemID      string         `json:"item_id"`
	SKU         string         `json:"sku"`
	ProductName string         `json:"product_name"`
	Category    string         `json:"category,omitempty"`
	Quantity    *float64       `json:"quantity,omitempty"`
	Supplier    string         `json:"supplier,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Location    string         `json:"location,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
	CreatedBy   string         `json:"created_by"`
	UpdatedBy   string         `json:"updated_by"`
}

// Active reports whether the item has not been soft-deleted.
func (i *InventoryItem) Active() bool { return i.DeletedAt == nil }

// Clone returns an independent copy of the item. The metadata map and all
// pointer fields are duplicated, so mutating the original afterwards never
// shows through the copy.
func (i InventoryItem) Clone() InventoryItem {
	i.Metadata = maps.Clone(i.Metadata)
	if i.Quantity != nil {
		q := *i.Quantity
		i.Quantity = &q
	}
	if i.Price != nil {
		p := *i.Price
		i.Price = &p
	}
	if i.DeletedAt != nil {
		d := *i.DeletedAt
		i.DeletedAt = &d
	}
	return i
}

// UpdatableFields is the allow-list of patchable item fields. ItemID and
// SKU are immutable after create; timestamps and actor fields are managed
// by the store.
var UpdatableFields = map[string]bool{
	"product_name": true,
	"category":     true,
	"quantity":     true,
	"supplier":     true,
	"price":        true,
	"location":     true,
	"metadata":     true,
}

// CoerceNumber converts a free-form patch value to a number or nil.
// JSON numbers pass through, numeric strings are parsed, everything else
// (including unparseable strings) becomes nil.
func CoerceNumber(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		// JSON decoding never yields int, but direct callers do.
		f := float64(n)
		return &f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// ValidMetadata reports whether v is usable as item metadata: either nil
// or an object whose values are strings, numbers, booleans or null.
// Nested objects and arrays are rejected.
func ValidMetadata(v any) bool {
	if v == nil {
		return true
	}
	object, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, value := range object {
		switch value.(type) {
		case string, float64, int, bool, nil:
		default:
			return false
		}
	}
	return true
}
