// Package app wires the catalog service together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/catalog/internal/config"
	"github.com/abgdnv/catalog/internal/product/handler"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ServiceName names the service in telemetry, gRPC health and the config env prefix.
const ServiceName = "catalog"

type Dependencies struct {
	Store     store.ProductStore
	Publisher messaging.Publisher
	Logger    *slog.Logger
	// MetricsHandler serves the Prometheus exposition. Nil disables the endpoint.
	MetricsHandler http.Handler
}

func SetupDependencies(publisher messaging.Publisher, metricsHandler http.Handler, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Store:          store.NewInMemoryStore(),
		Publisher:      publisher,
		Logger:         logger,
		MetricsHandler: metricsHandler,
	}
}

// SetupHttpHandler builds the router with middleware and all routes.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, cfg.CORS)
	wireRoutes(mux, deps, cfg)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	productHandler := handler.NewHandler(deps.Store, deps.Publisher, deps.Logger)
	productHandler.RegisterRoutes(mux)

	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, cfg.Metrics.Path, deps.MetricsHandler)
	}
}

// SetupHttpServer creates the HTTP server. Requests are traced and measured by otelhttp.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)
	instrumented := otelhttp.NewHandler(mux, ServiceName+".http")
	return server.NewHTTPServer(server.HTTPConfigFrom(cfg.HTTPServer), instrumented)
}

// SetupGrpcServer creates the gRPC server exposing the standard health service.
// The returned health server is flipped to NOT_SERVING on shutdown.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *health.Server) {
	healthRegisterFunc, hs := server.WithHealth(ServiceName)
	return server.NewGRPCServer(deps.Logger, cfg.GRPC.ReflectionEnabled, healthRegisterFunc), hs
}
