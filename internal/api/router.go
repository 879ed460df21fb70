package api

import (
	"net/http"
	"time"

	// Required by swaggo to find the API definitions.
	_ "tenantchat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter configures the chi router with all application routes.
func NewRouter(tenantHandler *TenantHandler, chatHandler *ChatHandler, modelHandler *ModelHandler, documentHandler *DocumentHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes carry a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/tenants", tenantHandler.HandleCreateTenant)
			r.Post("/tenants/check-slug", tenantHandler.HandleCheckSlug)
			r.Get("/tenants/by-slug/{slug}", tenantHandler.HandleGetTenantBySlug)
			r.Get("/tenants/{tenantID}/settings", tenantHandler.HandleGetSettings)
			r.Put("/tenants/{tenantID}/settings", tenantHandler.HandleUpdateSettings)
			r.Post("/tenants/{tenantID}/invites", tenantHandler.HandleInvite)
			r.Post("/tenants/{tenantID}/documents", documentHandler.HandleIndexDocument)

			r.Post("/tenants/{tenantID}/conversations", chatHandler.HandleCreateConversation)
			r.Get("/tenants/{tenantID}/conversations", chatHandler.HandleListConversations)
			r.Get("/tenants/{tenantID}/conversations/{conversationID}/messages", chatHandler.HandleGetMessages)

			r.Get("/models", modelHandler.HandleListModels)
		})

		// Streaming routes hold the connection open; no timeout here.
		r.Group(func(r chi.Router) {
			r.Post("/tenants/{tenantID}/conversations/{conversationID}/messages", chatHandler.HandleStreamMessage)
		})
	})

	return r
}
