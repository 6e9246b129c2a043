package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streakd/streakd/internal/config"
	"github.com/streakd/streakd/internal/storage"
	"github.com/streakd/streakd/internal/tracker"
)

type Server struct {
	cfg     *config.Config
	store   storage.Store
	tracker *tracker.Service

	auth *authenticator

	// now is swappable in tests; everything date-sensitive goes through it.
	now func() time.Time
}

func New(cfg *config.Config, store storage.Store) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		store:   store,
		tracker: tracker.New(store),
		now:     time.Now,
	}

	if cfg.AuthEnabled {
		auth, err := newAuthenticator(cfg, store)
		if err != nil {
			return nil, err
		}
		s.auth = auth
	}

	return s, nil
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Get("/health", s.getHealth)
	r.Handle("/metrics", promhttp.Handler())

	if s.cfg.AuthEnabled {
		r.Get("/auth/login", s.auth.loginPage)
		r.Get("/auth/login/start", s.auth.login)
		r.Get("/auth/callback", s.auth.callback)
		r.Post("/auth/logout", s.auth.logout)
	}

	r.Route("/habits", func(r chi.Router) {
		if s.cfg.AuthEnabled {
			r.Use(s.auth.middleware)
		}
		r.Post("/", s.createHabit)
		r.Get("/", s.listHabits)
		r.Get("/analytics", s.getAnalytics)
		r.Get("/daily-progress", s.getDailyProgress)
		r.Get("/{habit_id}", s.getHabit)
		r.Delete("/{habit_id}", s.deleteHabit)
		r.Post("/{habit_id}/log", s.logHabit)
	})

	if s.cfg.AuthEnabled {
		r.Route("/auth/api_keys", func(r chi.Router) {
			r.Use(s.auth.middleware)
			r.Post("/", s.auth.generateAPIKey)
			r.Get("/", s.auth.listAPIKeys)
			r.Delete("/{key_hash}", s.auth.deleteAPIKey)
		})
	}

	return r
}

// userID resolves the authenticated user, or the fixed single-user identity
// when auth is disabled.
func (s *Server) userID(r *http.Request) string {
	if !s.cfg.AuthEnabled {
		return "default"
	}
	if u, ok := r.Context().Value(userCtxKey{}).(*User); ok {
		return u.UserID
	}
	return ""
}
