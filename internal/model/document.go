package model

// Document is the root persisted object: every collection the service owns
// lives in this one structure, serialized as a single JSON file on disk.
// AppMeta holds operational key-value state (signing secret, API token,
// revoked token ids) alongside the domain collections.
type Document struct {
	Users          []User            `json:"users"`
	InventoryItems []InventoryItem   `json:"inventory_items"`
	InventoryAudit []AuditEntry      `json:"inventory_audit"`
	AppMeta        map[string]string `json:"app_meta"`
}

// NewDocument returns an empty document with all collections initialized,
// so a fresh document serializes with every top-level key present.
func NewDocument() *Document {
	return &Document{
		Users:          []User{},
		InventoryItems: []InventoryItem{},
		InventoryAudit: []AuditEntry{},
		AppMeta:        map[string]string{},
	}
}

// FindItem returns a pointer to the item with the given id, regardless of
// deletion state, or nil.
func (d *Document) FindItem(itemID string) *InventoryItem {
	for i := range d.InventoryItems {
		if d.InventoryItems[i].ItemID == itemID {
			return &d.InventoryItems[i]
		}
	}
	return nil
}

// FindActiveSKU returns a pointer to the non-deleted item with the given
// SKU, or nil. Soft-deleted items do not reserve their SKU.
func (d *Document) FindActiveSKU(sku string) *InventoryItem {
	for i := range d.InventoryItems {
		item := &d.InventoryItems[i]
		if item.SKU == sku && item.Active() {
			return item
		}
	}
	return nil
}

// FindUser returns a pointer to the user with the given id, or nil.
func (d *Document) FindUser(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByUsername returns a pointer to the non-deleted user with the
// given username, or nil.
func (d *Document) FindUserByUsername(username string) *User {
	for i := range d.Users {
		user := &d.Users[i]
		if user.Username == username && user.Active() {
			return user
		}
	}
	return nil
}
