package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kalrend/warchest/internal/allocation"
	"github.com/kalrend/warchest/internal/character"
	"github.com/kalrend/warchest/internal/database"
	"github.com/kalrend/warchest/internal/handler"
	"github.com/kalrend/warchest/internal/ledger"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/loot"
	"github.com/kalrend/warchest/internal/merge"
	"github.com/kalrend/warchest/internal/metrics"
	"github.com/kalrend/warchest/internal/warehouse"
)

// Services bundles everything the router needs.
type Services struct {
	Warehouse  warehouse.Service
	Allocation allocation.Service
	Merge      merge.Service
	Loot       loot.Service
	Character  character.Service
	Ledger     ledger.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/loot", func(r chi.Router) {
			r.Post("/publish", handler.HandlePublish(svcs.Loot))
			r.Post("/auto-assign", handler.HandleAutoAssign(svcs.Loot))
			r.Get("/records", handler.HandleListRecords(svcs.Loot))
			r.Put("/records/{id}/memo", handler.HandleUpdateMemo(svcs.Loot))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListItems(svcs.Warehouse))
			r.Post("/", handler.HandleCreateItem(svcs.Warehouse))
			r.Post("/merge", handler.HandleMergeItems(svcs.Merge))
			r.Post("/merge-currency", handler.HandleMergeCurrency(svcs.Merge))
			r.Get("/{id}", handler.HandleGetItem(svcs.Warehouse))
			r.Put("/{id}", handler.HandleUpdateItem(svcs.Warehouse))
			r.Delete("/{id}", handler.HandleDeleteItem(svcs.Warehouse))
			r.Post("/{id}/allocations", handler.HandleSetAllocation(svcs.Allocation))
			r.Delete("/{itemID}/allocations/{characterID}", handler.HandleRemoveAllocation(svcs.Allocation))
		})

		r.Route("/characters", func(r chi.Router) {
			r.Get("/", handler.HandleListCharacters(svcs.Character))
			r.Post("/", handler.HandleCreateCharacter(svcs.Character))
			r.Get("/{id}", handler.HandleGetCharacter(svcs.Character))
			r.Put("/{id}", handler.HandleUpdateCharacter(svcs.Character))
			r.Delete("/{id}", handler.HandleDeleteCharacter(svcs.Character))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", handler.HandleListTransactions(svcs.Ledger))
			r.Get("/summary", handler.HandleLedgerSummary(svcs.Ledger))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
