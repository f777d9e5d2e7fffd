package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/imaging"
	"github.com/mlakar/inventar/internal/store"
)

// ItemsHandler handles inventory item endpoints.
type ItemsHandler struct {
	Docs *document.Store

	// ImageDir is where processed item images are stored, keyed by item
	// id. Image bytes never enter the document itself.
	ImageDir string
}

// List handles GET /api/items. Soft-deleted items are excluded unless
// ?include_deleted=true.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"
	items, err := store.ListItems(h.Docs, includeDeleted)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. The body is a JSON object with required
// sku and product_name; any other allow-listed fields are applied as an
// initial patch.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	sku, _ := req["sku"].(string)
	productName, _ := req["product_name"].(string)
	delete(req, "sku")
	delete(req, "product_name")

	claims := GetClaims(r.Context())
	item, err := store.CreateItem(h.Docs, sku, productName, req, claims.Username)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("item created", "user", claims.Username, "item", item.ItemID, "sku", item.SKU)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}. Soft-deleted items still resolve.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(h.Docs, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Patch handles PATCH /api/items/{id}. Only allow-listed fields from the
// body are applied; a patch with none of them is rejected.
func (h *ItemsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	item, err := store.UpdateItem(h.Docs, r.PathValue("id"), patch, claims.Username)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("item updated", "user", claims.Username, "item", item.ItemID)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id} (soft delete).
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	item, err := store.SoftDeleteItem(h.Docs, r.PathValue("id"), claims.Username)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("item deleted", "user", claims.Username, "item", item.ItemID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// GetAudit handles GET /api/items/{id}/audit. Entries come back newest
// first; an unknown id yields an empty list, and entries survive the
// item's deletion.
func (h *ItemsHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := store.AuditForItem(h.Docs, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}

// UploadImage handles PUT /api/items/{id}/image. The upload is sniffed,
// downscaled and re-encoded before being written next to the document.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := store.GetItem(h.Docs, id); err != nil {
		storeError(w, err)
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "validation", "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "validation", "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	if err := os.MkdirAll(h.ImageDir, 0o750); err != nil {
		slog.Error("creating image directory", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal", "failed to save image")
		return
	}
	if err := os.WriteFile(h.imagePath(id), result.Data, 0o640); err != nil {
		slog.Error("writing image", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal", "failed to save image")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item image uploaded", "user", claims.Username, "item", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.imagePath(r.PathValue("id")))
	if errors.Is(err, fs.ErrNotExist) {
		jsonError(w, http.StatusNotFound, "not_found", "no image")
		return
	}
	if err != nil {
		slog.Error("reading image", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal", "failed to read image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func (h *ItemsHandler) imagePath(id string) string {
	// Item ids are generated UUIDs; Base guards hand-crafted ids with
	// path separators.
	return filepath.Join(h.ImageDir, filepath.Base(id)+".jpg")
}
