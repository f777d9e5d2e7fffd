package model

import "time"

// Audit operations.
const (
	OpCreate = "CREATE"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// FieldChange records one field's transition inside an audit diff.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// AuditEntry describes a single mutation of an inventory item. Entries are
// immutable once recorded. FullRecord is an independent snapshot of the
// item as it stood after the operation, so later changes never rewrite
// history. Diff is nil for CREATE entries and serializes as null.
type AuditEntry struct {
	AuditID    string                 `json:"audit_id"`
	ItemID     string                 `json:"item_id"`
	Operation  string                 `json:"operation"`
	ChangedBy  string                 `json:"changed_by"`
	ChangedAt  time.Time              `json:"changed_at"`
	Diff       map[string]FieldChange `json:"diff"`
	FullRecord InventoryItem          `json:"full_record"`
}
