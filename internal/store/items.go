// Package store implements the domain operations on top of the shared
// document store. Mutating functions run inside the document's exclusive
// update slot, so each one is a serialized read-modify-write; read-only
// functions load the current document directly and never block writers.
package store

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// Swappable for deterministic tests.
var (
	now   = time.Now
	newID = uuid.NewString
)

// CreateItem creates a new inventory item and records a CREATE audit
// entry. The SKU must not be in use by another non-deleted item; extra
// allow-listed fields are applied the same way an update patch would be.
func CreateItem(docs *document.Store, sku, productName string, fields map[string]any, actor string) (*model.InventoryItem, error) {
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrValidation)
	}
	if productName == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrValidation)
	}
	if meta, ok := fields["metadata"]; ok && !model.ValidMetadata(meta) {
		return nil, fmt.Errorf("%w: metadata values must be strings, numbers, booleans or null", ErrValidation)
	}

	var created model.InventoryItem
	err := docs.Update(func(doc *model.Document) error {
		if doc.FindActiveSKU(sku) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateSKU, sku)
		}

		ts := now().UTC()
		item := model.InventoryItem{
			ItemID:      newID(),
			SKU:         sku,
			ProductName: productName,
			CreatedAt:   ts,
			UpdatedAt:   ts,
			CreatedBy:   actor,
			UpdatedBy:   actor,
		}
		applyPatch(&item, fields)

		doc.InventoryItems = append(doc.InventoryItems, item)
		recordAudit(doc, model.OpCreate, nil, &item, actor, ts)
		created = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetItem returns an item by id, regardless of deletion state.
func GetItem(docs *document.Store, itemID string) (*model.InventoryItem, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	item := doc.FindItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	clone := item.Clone()
	return &clone, nil
}

// ListItems returns items in insertion order. Soft-deleted items are
// excluded unless includeDeleted is set.
func ListItems(docs *document.Store, includeDeleted bool) ([]model.InventoryItem, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := make([]model.InventoryItem, 0, len(doc.InventoryItems))
	for _, item := range doc.InventoryItems {
		if includeDeleted || item.Active() {
			items = append(items, item)
		}
	}
	return items, nil
}

// UpdateItem applies an allow-listed patch to an item and records an
// UPDATE audit entry with the per-field before/after transitions. Fields
// outside the allow-list are dropped; if nothing remains the patch is
// rejected with ErrNoUpdates before the update slot is entered. Patching
// a soft-deleted item is allowed and does not resurrect it.
func UpdateItem(docs *document.Store, itemID string, patch map[string]any, actor string) (*model.InventoryItem, error) {
	filtered := make(map[string]any, len(patch))
	for field, value := range patch {
		if model.UpdatableFields[field] {
			filtered[field] = value
		}
	}
	if len(filtered) == 0 {
		return nil, ErrNoUpdates
	}
	if meta, ok := filtered["metadata"]; ok && !model.ValidMetadata(meta) {
		return nil, fmt.Errorf("%w: metadata values must be strings, numbers, booleans or null", ErrValidation)
	}

	var updated model.InventoryItem
	err := docs.Update(func(doc *model.Document) error {
		item := doc.FindItem(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", ErrNotFound, itemID)
		}

		ts := now().UTC()
		diff := applyPatch(item, filtered)
		item.UpdatedAt = ts
		item.UpdatedBy = actor

		recordAudit(doc, model.OpUpdate, diff, item, actor, ts)
		updated = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SoftDeleteItem marks an item deleted and records a DELETE audit entry.
// Deleting an already-deleted item refreshes its deleted_at timestamp;
// the record itself is never removed.
func SoftDeleteItem(docs *document.Store, itemID, actor string) (*model.InventoryItem, error) {
	var deleted model.InventoryItem
	err := docs.Update(func(doc *model.Document) error {
		item := doc.FindItem(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s", ErrNotFound, itemID)
		}

		ts := now().UTC()
		var before any
		if item.DeletedAt != nil {
			before = *item.DeletedAt
		}
		when := ts
		item.DeletedAt = &when
		item.UpdatedAt = ts
		item.UpdatedBy = actor

		diff := map[string]model.FieldChange{
			"deleted_at": {Before: before, After: when},
		}
		recordAudit(doc, model.OpDelete, diff, item, actor, ts)
		deleted = item.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// applyPatch copies the allow-listed fields from patch onto item and
// returns the audit diff keyed by field name. Numeric fields go through
// CoerceNumber; a no-op assignment still produces a diff entry, matching
// what the request asked for rather than what actually changed.
func applyPatch(item *model.InventoryItem, patch map[string]any) map[string]model.FieldChange {
	diff := make(map[string]model.FieldChange, len(patch))
	for field, value := range patch {
		switch field {
		case "product_name":
			before := stringOrNil(item.ProductName)
			item.ProductName = asString(value)
			diff[field] = model.FieldChange{Before: before, After: stringOrNil(item.ProductName)}
		case "category":
			before := stringOrNil(item.Category)
			item.Category = asString(value)
			diff[field] = model.FieldChange{Before: before, After: stringOrNil(item.Category)}
		case "quantity":
			before := numberOrNil(item.Quantity)
			item.Quantity = model.CoerceNumber(value)
			diff[field] = model.FieldChange{Before: before, After: numberOrNil(item.Quantity)}
		case "supplier":
			before := stringOrNil(item.Supplier)
			item.Supplier = asString(value)
			diff[field] = model.FieldChange{Before: before, After: stringOrNil(item.Supplier)}
		case "price":
			before := numberOrNil(item.Price)
			item.Price = model.CoerceNumber(value)
			diff[field] = model.FieldChange{Before: before, After: numberOrNil(item.Price)}
		case "location":
			before := stringOrNil(item.Location)
			item.Location = asString(value)
			diff[field] = model.FieldChange{Before: before, After: stringOrNil(item.Location)}
		case "metadata":
			before := metadataOrNil(item.Metadata)
			object, _ := value.(map[string]any)
			item.Metadata = maps.Clone(object)
			diff[field] = model.FieldChange{Before: before, After: metadataOrNil(item.Metadata)}
		}
	}
	return diff
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Unset optional fields read as null in audit diffs.
func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func numberOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func metadataOrNil(m map[string]any) any {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
