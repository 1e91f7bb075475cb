package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nyaya-lab/nyayasetu/pkg/service/realtime"
	"github.com/nyaya-lab/nyayasetu/pkg/usecase"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	hub    *realtime.Hub
}

type Options func(*Server)

// WithRealtimeHub enables the websocket endpoint backed by the given hub
func WithRealtimeHub(hub *realtime.Hub) Options {
	return func(s *Server) {
		s.hub = hub
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/client", func(r chi.Router) {
		r.Post("/conversations", s.startConversation)
		r.Get("/conversations", s.listConversations)
		r.Get("/conversations/{conversationID}", s.getConversation)
		r.Get("/conversations/{conversationID}/messages", s.listMessages)
		r.Post("/conversations/{conversationID}/messages", s.sendMessage)

		r.Get("/cases", s.listClientCases)
		r.Get("/cases/{caseID}", s.getClientCase)
		r.Get("/cases/{caseID}/recommendations", s.recommendations)
		r.Post("/cases/{caseID}/select-advocate", s.selectAdvocate)

		s.mountNotifications(r)
	})

	r.Route("/api/advocate", func(r chi.Router) {
		r.Get("/profile", s.getAdvocateProfile)
		r.Post("/profile", s.putAdvocateProfile)
		r.Put("/profile", s.putAdvocateProfile)
		r.Put("/availability", s.setAvailability)

		r.Get("/case-requests", s.listRequests)
		r.Get("/case-requests/{requestID}", s.getRequest)
		r.Post("/case-requests/{requestID}/accept", s.acceptRequest)
		r.Post("/case-requests/{requestID}/reject", s.rejectRequest)

		r.Get("/cases", s.listAdvocateCases)
		r.Get("/cases/{caseID}", s.getAdvocateCase)
		r.Post("/cases/{caseID}/messages", s.postAdvocateMessage)

		s.mountNotifications(r)
	})

	r.Post("/api/match/preview", s.matchPreview)

	if s.hub != nil {
		r.Get("/ws/{conversationID}", s.serveWebSocket)
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// mountNotifications registers the notification routes shared by both roles
func (s *Server) mountNotifications(r chi.Router) {
	r.Get("/notifications", s.listNotifications)
	r.Get("/notifications/unread-count", s.countUnread)
	r.Post("/notifications/{notificationID}/read", s.markNotificationRead)
	r.Post("/notifications/read-all", s.markAllNotificationsRead)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
