package document

import (
	"os"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mlakar/inventar/internal/model"
)

// TestDocumentLayout pins the on-disk document format. The file is meant
// to be read and edited by external tooling, so its layout is a contract:
// key names, key order, indentation, and timestamp format must not drift.
func TestDocumentLayout(t *testing.T) {
	s := NewTestStore(t)
	require.NoError(t, s.Save(layoutDocument()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "document", data)
}

func layoutDocument() *model.Document {
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quantity := 12.0
	price := 19.99

	item := model.InventoryItem{
		ItemID:      "0f8fad5b-d9cb-469f-a165-70867728950e",
		SKU:         "TOOL-001",
		ProductName: "Torque Wrench",
		Category:    "tools",
		Quantity:    &quantity,
		Supplier:    "Wera",
		Price:       &price,
		Location:    "shelf A3",
		Metadata:    map[string]any{"finish": "chrome", "warranty_years": 2.0},
		CreatedAt:   ts,
		UpdatedAt:   ts,
		CreatedBy:   "admin",
		UpdatedBy:   "admin",
	}

	doc := model.NewDocument()
	doc.Users = append(doc.Users, model.User{
		ID:           "7b0d0b53-7b8f-4b9f-a4a5-1d8e0a3b2c1d",
		Username:     "admin",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye",
		Role:         model.RoleAdmin,
		CreatedAt:    ts,
	})
	doc.InventoryItems = append(doc.InventoryItems, item)
	doc.InventoryAudit = append(doc.InventoryAudit, model.AuditEntry{
		AuditID:    "5a1b2c3d-4e5f-4671-8293-a4b5c6d7e8f9",
		ItemID:     item.ItemID,
		Operation:  model.OpCreate,
		ChangedBy:  "admin",
		ChangedAt:  ts,
		FullRecord: item.Clone(),
	})
	doc.AppMeta["admin_token"] = "f2f0c9aa4c6d4e3f9d2b1a0c8e7f6a5b"
	doc.AppMeta["jwt_secret"] = "6d1e0f2a3b4c5d6e7f8091a2b3c4d5e6"
	return doc
}
