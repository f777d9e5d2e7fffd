package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// recordAudit prepends a new entry to the audit trail, keeping it ordered
// newest first. FullRecord is taken as an independent snapshot of the item
// as it stands after the operation; existing entries are never modified
// or removed.
func recordAudit(doc *model.Document, operation string, diff map[string]model.FieldChange, item *model.InventoryItem, actor string, ts time.Time) {
	entry := model.AuditEntry{
		AuditID:    newID(),
		ItemID:     item.ItemID,
		Operation:  operation,
		ChangedBy:  actor,
		ChangedAt:  ts,
		Diff:       diff,
		FullRecord: item.Clone(),
	}
	doc.InventoryAudit = append([]model.AuditEntry{entry}, doc.InventoryAudit...)
}

// AuditForItem returns the audit entries for an item, newest first. An id
// with no history yields an empty slice; history survives the item's
// deletion.
func AuditForItem(docs *document.Store, itemID string) ([]model.AuditEntry, error) {
	doc, err := docs.Load()
	if err != nil {
		return nil, fmt.Errorf("loading audit trail: %w", err)
	}

	entries := make([]model.AuditEntry, 0)
	for _, entry := range doc.InventoryAudit {
		if entry.ItemID == itemID {
			entries = append(entries, entry)
		}
	}

	// Entries are kept newest-first already; the stable sort re-asserts
	// the order for documents edited by hand and keeps insertion order
	// for equal timestamps.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt.After(entries[j].ChangedAt)
	})
	return entries, nil
}
