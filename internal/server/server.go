// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-board/internal/chatbot"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
	"github.com/jonathan/job-board/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer         *http.Server
	db                 *db.DB
	logger             *zap.Logger
	resumes            *storage.Store
	rateLimiter        *ratelimit.Limiter
	jwtService         *JWTService
	userService        *UserService
	applicationService *ApplicationService
	authHandler        *AuthHandler
	chatbot            *chatbot.Dispatcher
}

// New creates a new server instance
func New(cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	resumes, err := storage.New(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume storage: %w", err)
	}

	s := &Server{
		db:      database,
		logger:  logger,
		resumes: resumes,
	}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig, logger)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	s.applicationService = NewApplicationService(database, resumes, logger)
	s.chatbot = chatbot.New(database)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router with authentication applied per route group.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Auth(s.jwtService)
	hr := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(string(db.RoleHR))(h))
	}
	candidate := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(string(db.RoleCandidate))(h))
	}

	// Public endpoints
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /chatbot/query", s.handleChatbotQuery)
	mux.HandleFunc("GET /chatbot/jobs/{id}", s.handleChatbotJobDetails)
	mux.HandleFunc("GET /health", s.handleHealth)

	// HR endpoints
	mux.Handle("POST /jobs", hr(s.handleCreateJob))
	mux.Handle("PUT /jobs/{id}", hr(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{id}", hr(s.handleCloseJob))
	mux.Handle("GET /jobs/{id}/applications", hr(s.handleListJobApplicants))
	mux.Handle("GET /applications", hr(s.handleListApplicants))
	mux.Handle("PUT /applications/{id}/status", hr(s.handleUpdateApplicationStatus))
	mux.Handle("GET /hr/dashboard", hr(s.handleHRDashboard))

	// Candidate endpoints
	mux.Handle("POST /jobs/{id}/applications", candidate(s.handleApply))
	mux.Handle("GET /my/applications", candidate(s.handleMyApplications))
	mux.Handle("GET /my/dashboard", candidate(s.handleCandidateDashboard))
	mux.Handle("GET /my/saved-jobs", candidate(s.handleListSavedJobs))
	mux.Handle("PUT /my/saved-jobs/{job_id}", candidate(s.handleSaveJob))
	mux.Handle("DELETE /my/saved-jobs/{job_id}", candidate(s.handleUnsaveJob))

	// Shared authenticated endpoints
	mux.Handle("GET /my/profile", authed(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /my/profile", authed(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("GET /resumes/{name}", authed(http.HandlerFunc(s.handleDownloadResume)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces per-client request budgets and answers 429 when a
// budget is exhausted.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID),
				zap.String("path", r.URL.Path),
				zap.Int("limit", info.Limit))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP identifies the caller by the address half of RemoteAddr.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))
	}
}

// withLogging logs each request with its duration
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// authContext extracts the authenticated caller from the request context.
func (s *Server) authContext(r *http.Request) (AuthContext, error) {
	identity, err := middleware.GetIdentity(r)
	if err != nil {
		return AuthContext{}, err
	}
	return AuthContext{UserID: identity.UserID, Role: db.Role(identity.Role)}, nil
}

// optionalIdentity validates a bearer token on a public route, returning nil
// when the request is anonymous or the token is bad. Public handlers use it
// to enrich responses without making authentication mandatory.
func (s *Server) optionalIdentity(r *http.Request) *middleware.Identity {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}
	identity, err := s.jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return identity
}

// pathUUID parses a UUID path value from the request.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
