package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/chat-relay-be/internal/api/handlers"
	"github.com/isdelr/chat-relay-be/internal/auth"
	"github.com/isdelr/chat-relay-be/internal/services"
	"github.com/isdelr/chat-relay-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	messageService services.MessageServiceProvider,
	relayService services.RelayServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	messageHandler := handlers.NewMessageHandler(messageService, relayService)
	wsHandler := handlers.NewWebSocketHandler(hub, relayService)

	authenticated := tokens.Middleware(userService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// History reads, message posting and search all pass the access
		// gate; token auth is uniform across the message routes.
		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/messages", messageHandler.GetPage)
			r.Post("/messages", messageHandler.Post)
			r.Get("/messages/search", messageHandler.Search)
		})
	})

	// Live channel; the token rides the "token" query parameter here.
	r.Group(func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/ws", wsHandler.Serve)
	})

	return r
}
