package api

import (
	"net/http"

	"github.com/mlakar/inventar/internal/document"
	"github.com/mlakar/inventar/internal/model"
)

// Options carries the router's dependencies.
type Options struct {
	Docs       *document.Store
	JWTSecret  string
	AdminToken string

	// AdminUser is the principal requests made with the static admin
	// token act as.
	AdminUser string

	// ImageDir is the directory for processed item images.
	ImageDir string
}

// NewRouter creates the API router with all endpoints registered.
// Reads require authentication, item writes require manager or above,
// user management requires admin.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Docs: opts.Docs, JWTSecret: opts.JWTSecret}
	usersHandler := &UsersHandler{Docs: opts.Docs}
	itemsHandler := &ItemsHandler{Docs: opts.Docs, ImageDir: opts.ImageDir}

	authMW := AuthMiddleware(opts.Docs, opts.JWTSecret, opts.AdminToken, opts.AdminUser)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PATCH /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Patch))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("GET /api/items/{id}/audit", authMW(http.HandlerFunc(itemsHandler.GetAudit)))
	mux.Handle("PUT /api/items/{id}/image", authMW(requireManager(http.HandlerFunc(itemsHandler.UploadImage))))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
