package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wikimark/app/internal/article"
	"wikimark/app/internal/auth"
	"wikimark/app/internal/markdown"
	"wikimark/app/internal/user"
)

// Options configures the HTTP server wiring.
type Options struct {
	Articles    article.Service
	Repository  article.Repository
	Users       user.Repository
	Resolver    auth.Resolver
	Renderer    *markdown.Renderer
	Database    *gorm.DB
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	RateLimiter RateLimiterSettings
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the JSON API transport layer via Huma.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	articles    article.Service
	repository  article.Repository
	users       user.Repository
	resolver    auth.Resolver
	renderer    *markdown.Renderer
	logger      *logrus.Logger
	sentry      *sentry.Hub
	db          *gorm.DB
	rateLimiter *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Articles == nil {
		return nil, eris.New("article service is required")
	}
	if opts.Repository == nil {
		return nil, eris.New("article repository is required")
	}
	if opts.Users == nil {
		return nil, eris.New("user repository is required")
	}
	if opts.Resolver == nil {
		return nil, eris.New("identity resolver is required")
	}
	if opts.Renderer == nil {
		return nil, eris.New("markdown renderer is required")
	}
	if opts.Database == nil {
		return nil, eris.New("database is required")
	}
	if opts.Logger == nil {
		return nil, eris.New("logger is required")
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("Wikimark", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:        api,
		mux:        mux,
		articles:   opts.Articles,
		repository: opts.Repository,
		users:      opts.Users,
		resolver:   opts.Resolver,
		renderer:   opts.Renderer,
		logger:     opts.Logger,
		sentry:     opts.SentryHub,
		db:         opts.Database,
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	srv.rateLimiter = NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL)

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the
// application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.identityMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.registerListArticlesRoute()
	s.registerRecentArticlesRoute()
	s.registerGetArticleRoute()
	s.registerCreateArticleRoute()
	s.registerUpdateArticleRoute()
	s.registerDeleteArticleRoute()
	s.registerArticleVersionsRoute()
	s.registerSearchRoute()
	s.registerUserArticlesRoute()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
