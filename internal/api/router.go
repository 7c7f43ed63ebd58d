package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/model"
)

// Options tune the router.
type Options struct {
	// AllowedOrigins feeds the CORS policy. Empty allows any http(s) origin.
	AllowedOrigins []string
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
}

// NewRouter creates the API router with all endpoints registered and the
// request-id, access-log and CORS middleware applied.
func NewRouter(d *desk.Desk, jwtSecret string, opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Desk: d, JWTSecret: jwtSecret, TokenTTL: opts.TokenTTL}
	usersHandler := &UsersHandler{Desk: d}
	catalogHandler := &CatalogHandler{Desk: d}
	requestsHandler := &RequestsHandler{Desk: d}
	vendorsHandler := &VendorsHandler{Desk: d}
	configHandler := &ConfigHandler{Desk: d}
	tablesHandler := &TablesHandler{Desk: d}
	dataHandler := &DataHandler{Desk: d}

	authMW := AuthMiddleware(jwtSecret, d.DB())
	requireAdmin := RequireRole(model.RoleAdmin)

	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authMW(requireAdmin(h)) }

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/health", dataHandler.Health)

	// Auth.
	mux.Handle("POST /api/auth/logout", authed(authHandler.Logout))
	mux.Handle("PUT /api/auth/password", authed(authHandler.ChangePassword))
	mux.Handle("GET /api/auth/me", authed(authHandler.Me))

	// Users: admin, except own profile, history and avatar.
	mux.Handle("GET /api/users", admin(usersHandler.List))
	mux.Handle("POST /api/users", admin(usersHandler.Create))
	mux.Handle("GET /api/users/{id}", authed(usersHandler.Get))
	mux.Handle("PUT /api/users/{id}", admin(usersHandler.Update))
	mux.Handle("PUT /api/users/{id}/password", admin(usersHandler.ResetPassword))
	mux.Handle("GET /api/users/{id}/history", authed(usersHandler.History))
	mux.Handle("GET /api/users/{id}/platform-accounts", admin(usersHandler.ListPlatformAccounts))
	mux.Handle("POST /api/users/{id}/platform-accounts", admin(usersHandler.AddPlatformAccount))
	mux.Handle("PUT /api/users/{id}/avatar", authed(usersHandler.UploadAvatar))
	mux.Handle("GET /api/users/{id}/avatar", authed(usersHandler.GetAvatar))

	// Families.
	mux.Handle("GET /api/families", authed(catalogHandler.ListFamilies))
	mux.Handle("GET /api/families/summary", admin(catalogHandler.Summaries))
	mux.Handle("POST /api/families", admin(catalogHandler.CreateFamily))
	mux.Handle("GET /api/families/{id}", authed(catalogHandler.GetFamily))
	mux.Handle("PUT /api/families/{id}", admin(catalogHandler.UpdateFamily))
	mux.Handle("POST /api/families/{id}/bulk", admin(catalogHandler.BulkCreate))

	// Assets: reads are scoped to the viewer.
	mux.Handle("GET /api/assets", authed(catalogHandler.ListAssets))
	mux.Handle("POST /api/assets", admin(catalogHandler.CreateAsset))
	mux.Handle("GET /api/assets/{id}", authed(catalogHandler.GetAsset))
	mux.Handle("PUT /api/assets/{id}", admin(catalogHandler.UpdateAsset))
	mux.Handle("GET /api/assets/{id}/history", authed(catalogHandler.AssetHistory))

	// Requests and tasks.
	mux.Handle("GET /api/requests", authed(requestsHandler.List))
	mux.Handle("POST /api/requests", authed(requestsHandler.Submit))
	mux.Handle("POST /api/requests/{id}/approve", admin(requestsHandler.Approve))
	mux.Handle("POST /api/requests/{id}/reject", admin(requestsHandler.Reject))
	mux.Handle("POST /api/requests/{id}/task", admin(requestsHandler.ConfirmTask))
	mux.Handle("GET /api/tasks", admin(requestsHandler.ListTasks))
	mux.Handle("PUT /api/tasks/{id}/status", admin(requestsHandler.UpdateTaskStatus))

	// Vendors.
	mux.Handle("GET /api/vendors", authed(vendorsHandler.List))
	mux.Handle("POST /api/vendors", admin(vendorsHandler.Create))
	mux.Handle("PUT /api/vendors/{id}", admin(vendorsHandler.Update))
	mux.Handle("DELETE /api/vendors/{id}", admin(vendorsHandler.Delete))

	// Config and the asset id format.
	mux.Handle("GET /api/config", authed(configHandler.Get))
	mux.Handle("PUT /api/config", admin(configHandler.Replace))
	mux.Handle("GET /api/config/id-preview", authed(configHandler.Preview))
	mux.Handle("POST /api/config/id-sections", admin(configHandler.AddSection))
	mux.Handle("PUT /api/config/id-sections/{id}", admin(configHandler.UpdateSection))
	mux.Handle("DELETE /api/config/id-sections/{id}", admin(configHandler.RemoveSection))
	mux.Handle("POST /api/config/id-sections/{id}/move", admin(configHandler.MoveSection))
	mux.Handle("POST /api/config/id-sections/reset", admin(configHandler.ResetFormat))
	mux.Handle("PUT /api/config/id-separator", admin(configHandler.SetSeparator))

	// Forms.
	mux.Handle("GET /api/forms/{layout}", authed(configHandler.Form))
	mux.Handle("POST /api/forms/{layout}/validate", authed(configHandler.ValidateForm))

	// Tables, dashboard and search.
	mux.Handle("POST /api/tables/{name}/query", authed(tablesHandler.Query))
	mux.Handle("GET /api/tables/{name}/columns", authed(tablesHandler.View))
	mux.Handle("PUT /api/tables/{name}/columns", authed(tablesHandler.SaveColumns))
	mux.Handle("PUT /api/tables/{name}/settings", authed(tablesHandler.SaveSettings))
	mux.Handle("GET /api/dashboard", authed(tablesHandler.Dashboard))
	mux.Handle("GET /api/search", authed(tablesHandler.Search))

	// Data.
	mux.Handle("GET /api/export", admin(dataHandler.Export))
	mux.Handle("POST /api/import/{kind}", admin(dataHandler.Import))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://*", "https://*"}
	}
	corsMW := cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return RequestID(LoggingMiddleware(corsMW(mux)))
}
