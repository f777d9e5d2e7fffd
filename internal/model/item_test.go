package model

import (
	"testing"
	"time"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{"json number", float64(5), ptr(5.0)},
		{"int literal", 7, ptr(7.0)},
		{"numeric string", "19.99", ptr(19.99)},
		{"integer string", "42", ptr(42.0)},
		{"unparseable string", "lots", nil},
		{"empty string", "", nil},
		{"null", nil, nil},
		{"boolean", true, nil},
		{"object", map[string]any{"n": 1}, nil},
	}

	for _, tt := range tests {
		got := CoerceNumber(tt.value)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("%s: CoerceNumber(%v) = %v, want %v", tt.name, tt.value, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("%s: CoerceNumber(%v) = %v, want %v", tt.name, tt.value, *got, *tt.want)
		}
	}
}

func TestValidMetadata(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty object", map[string]any{}, true},
		{"primitives", map[string]any{"color": "red", "weight": 1.5, "fragile": true, "note": nil}, true},
		{"nested object", map[string]any{"dims": map[string]any{"w": 1}}, false},
		{"array value", map[string]any{"tags": []any{"a"}}, false},
		{"not an object", "metadata", false},
	}

	for _, tt := range tests {
		if got := ValidMetadata(tt.value); got != tt.want {
			t.Errorf("%s: ValidMetadata(%v) = %v, want %v", tt.name, tt.value, got, tt.want)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	deleted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	item := InventoryItem{
		ItemID:    "item-1",
		SKU:       "SKU-1",
		Quantity:  ptr(10.0),
		Price:     ptr(2.5),
		Metadata:  map[string]any{"color": "red"},
		DeletedAt: &deleted,
	}

	clone := item.Clone()

	item.Metadata["color"] = "blue"
	*item.Quantity = 99
	*item.Price = 99
	*item.DeletedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	if clone.Metadata["color"] != "red" {
		t.Errorf("clone metadata changed with original: %v", clone.Metadata["color"])
	}
	if *clone.Quantity != 10 {
		t.Errorf("clone quantity changed with original: %v", *clone.Quantity)
	}
	if *clone.Price != 2.5 {
		t.Errorf("clone price changed with original: %v", *clone.Price)
	}
	if !clone.DeletedAt.Equal(deleted) {
		t.Errorf("clone deleted_at changed with original: %v", clone.DeletedAt)
	}
}

func TestCloneNilFields(t *testing.T) {
	clone := InventoryItem{ItemID: "item-2", SKU: "SKU-2"}.Clone()

	if clone.Metadata != nil || clone.Quantity != nil || clone.Price != nil || clone.DeletedAt != nil {
		t.Errorf("clone of zero-value fields should stay nil: %+v", clone)
	}
}

func ptr(f float64) *float64 { return &f }
