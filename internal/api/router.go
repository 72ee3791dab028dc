package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "github.com/Babyaovo/Yaouo-sub000/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
// An empty frontendDir disables the static file server.
func NewRouter(conversationHandler *ConversationHandler, modelHandler *ModelHandler, gatherer prometheus.Gatherer, frontendDir string) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Settings ---
			r.Get("/settings", conversationHandler.GetSettings)
			r.Post("/settings", conversationHandler.UpdateSettings)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)

			// --- Characters ---
			r.Get("/characters", conversationHandler.GetCharacters)
			r.Put("/characters/{characterID}", conversationHandler.PutCharacter)

			// --- Conversations ---
			r.Get("/conversations", conversationHandler.GetConversations)
			r.Post("/conversations", conversationHandler.CreateConversation)
			r.Get("/conversations/{conversationID}", conversationHandler.GetConversation)
			r.Delete("/conversations/{conversationID}", conversationHandler.DeleteConversation)
			r.Put("/conversations/{conversationID}/settings", conversationHandler.UpdateConversationSettings)

			// --- Drafts and messages ---
			r.Post("/conversations/{conversationID}/pending", conversationHandler.StageMessage)
			r.Delete("/conversations/{conversationID}/pending/{index}", conversationHandler.UnstageMessage)
			r.Post("/conversations/{conversationID}/quote", conversationHandler.QuoteMessage)
			r.Delete("/conversations/{conversationID}/quote", conversationHandler.ClearQuote)
			r.Post("/conversations/{conversationID}/messages/delete", conversationHandler.DeleteMessages)
			r.Put("/conversations/{conversationID}/messages/{messageID}", conversationHandler.EditMessage)
			r.Delete("/conversations/{conversationID}/messages/{messageID}", conversationHandler.DeleteMessage)
			r.Get("/conversations/{conversationID}/messages/{messageID}/translation", conversationHandler.GetTranslation)
		})

		// Streaming routes must NOT have a timeout: a reply with several
		// bubbles holds the connection open for seconds.
		r.Group(func(r chi.Router) {
			r.Post("/conversations/{conversationID}/send", conversationHandler.HandleSend)
			r.Post("/conversations/{conversationID}/messages/{messageID}/regenerate", conversationHandler.HandleRegenerate)
		})
	})

	// --- Frontend File Server ---
	if frontendDir != "" {
		fileServer := http.FileServer(http.Dir(frontendDir))
		r.Handle("/*", http.StripPrefix("/", fileServer))
	}

	return r
}
