package store

import (
	"errors"
	"testing"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

func TestAuditTrailNewestFirst(t *testing.T) {
	docs := document.NewTestStore(t)

	item, err := CreateItem(docs, "SKU-1", "Wrench", nil, "admin")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := UpdateItem(docs, item.ItemID, map[string]any{"quantity": float64(5)}, "admin"); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if _, err := SoftDeleteItem(docs, item.ItemID, "admin"); err != nil {
		t.Fatalf("SoftDeleteItem: %v", err)
	}

	entries, err := AuditForItem(docs, item.ItemID)
	if err != nil {
		t.Fatalf("AuditForItem: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	ops := []string{entries[0].Operation, entries[1].Operation, entries[2].Operation}
	want := []string{model.OpDelete, model.OpUpdate, model.OpCreate}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], ops[i])
		}
	}
}

func TestEveryMutationRecordsOneEntry(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", nil, "admin")
	UpdateItem(docs, item.ItemID, map[string]any{"location": "A1"}, "admin")
	SoftDeleteItem(docs, item.ItemID, "admin")

	doc, err := docs.Load()
	if err != nil {
		t.Fatalf("loading document: %v", err)
	}
	if len(doc.InventoryAudit) != 3 {
		t.Errorf("expected exactly 3 audit entries, got %d", len(doc.InventoryAudit))
	}

	seen := make(map[string]bool)
	for _, entry := range doc.InventoryAudit {
		if seen[entry.AuditID] {
			t.Errorf("duplicate audit id %s", entry.AuditID)
		}
		seen[entry.AuditID] = true
	}
}

func TestCreateAuditEntry(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", map[string]any{"quantity": float64(3)}, "maja")

	entries, _ := AuditForItem(docs, item.ItemID)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Operation != model.OpCreate {
		t.Errorf("expected CREATE, got %s", entry.Operation)
	}
	if entry.Diff != nil {
		t.Errorf("expected nil diff for CREATE, got %v", entry.Diff)
	}
	if entry.ChangedBy != "maja" {
		t.Errorf("expected changed_by 'maja', got %q", entry.ChangedBy)
	}
	if entry.FullRecord.ItemID != item.ItemID || entry.FullRecord.SKU != "SKU-1" {
		t.Errorf("expected full record snapshot of the item, got %+v", entry.FullRecord)
	}
}

func TestUpdateAuditDiffListsPatchedFields(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", nil, "admin")
	UpdateItem(docs, item.ItemID, map[string]any{
		"quantity": float64(5),
		"location": "shelf B2",
	}, "admin")

	entries, _ := AuditForItem(docs, item.ItemID)
	diff := entries[0].Diff
	if len(diff) != 2 {
		t.Fatalf("expected diff with 2 fields, got %v", diff)
	}

	quantity, ok := diff["quantity"]
	if !ok {
		t.Fatal("expected quantity in diff")
	}
	if quantity.Before != nil {
		t.Errorf("expected quantity before null, got %v", quantity.Before)
	}
	if quantity.After != float64(5) {
		t.Errorf("expected quantity after 5, got %v", quantity.After)
	}
	if _, ok := diff["location"]; !ok {
		t.Error("expected location in diff")
	}
}

func TestUpdateAuditKeepsNoOpFields(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", map[string]any{"quantity": float64(5)}, "admin")

	// Patching a field to its current value still shows up in the diff:
	// the trail records what was asked, not what changed.
	UpdateItem(docs, item.ItemID, map[string]any{"quantity": float64(5)}, "admin")

	entries, _ := AuditForItem(docs, item.ItemID)
	quantity, ok := entries[0].Diff["quantity"]
	if !ok {
		t.Fatal("expected no-op field in diff")
	}
	if quantity.Before != float64(5) || quantity.After != float64(5) {
		t.Errorf("expected before/after both 5, got %v/%v", quantity.Before, quantity.After)
	}
}

func TestDeleteAuditDiff(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", nil, "admin")
	SoftDeleteItem(docs, item.ItemID, "admin")

	entries, _ := AuditForItem(docs, item.ItemID)
	change, ok := entries[0].Diff["deleted_at"]
	if !ok {
		t.Fatal("expected deleted_at in DELETE diff")
	}
	if change.Before != nil {
		t.Errorf("expected deleted_at before null, got %v", change.Before)
	}
	if change.After == nil {
		t.Error("expected deleted_at after to carry the deletion time")
	}

	// A second delete records the previous timestamp as before.
	SoftDeleteItem(docs, item.ItemID, "admin")
	entries, _ = AuditForItem(docs, item.ItemID)
	change = entries[0].Diff["deleted_at"]
	if change.Before == nil {
		t.Error("expected re-delete diff to carry previous deleted_at")
	}
}

func TestAuditSnapshotIndependent(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", map[string]any{
		"metadata": map[string]any{"finish": "chrome"},
	}, "admin")

	UpdateItem(docs, item.ItemID, map[string]any{
		"product_name": "Impact Wrench",
		"metadata":     map[string]any{"finish": "matte"},
	}, "admin")

	entries, _ := AuditForItem(docs, item.ItemID)
	created := entries[1]
	if created.Operation != model.OpCreate {
		t.Fatalf("expected CREATE at position 1, got %s", created.Operation)
	}
	if created.FullRecord.ProductName != "Wrench" {
		t.Errorf("CREATE snapshot rewritten by later update: %q", created.FullRecord.ProductName)
	}
	if created.FullRecord.Metadata["finish"] != "chrome" {
		t.Errorf("CREATE snapshot metadata rewritten by later update: %v", created.FullRecord.Metadata)
	}
}

func TestAuditForUnknownItem(t *testing.T) {
	docs := document.NewTestStore(t)

	entries, err := AuditForItem(docs, "missing")
	if err != nil {
		t.Fatalf("AuditForItem: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty history, got %v", entries)
	}
}

func TestAuditSurvivesDeletion(t *testing.T) {
	docs := document.NewTestStore(t)

	item, _ := CreateItem(docs, "SKU-1", "Wrench", nil, "admin")
	SoftDeleteItem(docs, item.ItemID, "admin")

	entries, _ := AuditForItem(docs, item.ItemID)
	if len(entries) != 2 {
		t.Errorf("expected full history after deletion, got %d entries", len(entries))
	}
}

func TestFailedMutationLeavesNoAudit(t *testing.T) {
	docs := document.NewTestStore(t)

	CreateItem(docs, "SKU-1", "First", nil, "admin")
	if _, err := CreateItem(docs, "SKU-1", "Second", nil, "admin"); !errors.Is(err, ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}

	doc, _ := docs.Load()
	if len(doc.InventoryAudit) != 1 {
		t.Errorf("expected 1 audit entry after failed create, got %d", len(doc.InventoryAudit))
	}
}
