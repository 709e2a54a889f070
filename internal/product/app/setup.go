// Package app contains the application setup for the ProductService.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productmanager/internal/config"
	"github.com/abgdnv/productmanager/internal/platform/web"
	grpcImpl "github.com/abgdnv/productmanager/internal/product/grpc"
	"github.com/abgdnv/productmanager/internal/product/handler"
	"github.com/abgdnv/productmanager/internal/product/manager"
	"github.com/abgdnv/productmanager/internal/product/service"
	"github.com/abgdnv/productmanager/internal/product/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc"
)

type Dependencies struct {
	Store          *store.FileStore
	Manager        *manager.ProductManager
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(storePath string, logger *slog.Logger) *Dependencies {
	fileStore := store.NewFileStore(storePath, logger)

	return &Dependencies{
		Store:          fileStore,
		Manager:        manager.New(fileStore, logger),
		ProductService: service.NewService(fileStore, logger),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the routes for the ProductService application.
func SetupHttpHandler(deps *Dependencies) http.Handler {

	pApi := handler.NewAPI(deps.ProductService, deps.Logger)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(deps.Logger))
	mux.Use(web.Recoverer(deps.Logger))

	mux.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", pApi.FindAll)
		r.Post("/", pApi.Create)
		r.Delete("/", pApi.DeleteAll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", pApi.FindByID)
			r.Patch("/", pApi.Update)
			r.Delete("/", pApi.DeleteByID)
		})
	})

	mux.Get("/healthz", pApi.HealthCheck)

	return mux
}

// SetupHttpServer creates and configures an HTTP server for the ProductService application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:           mux,
		ReadTimeout:       cfg.HTTPServer.Timeout.Read,
		WriteTimeout:      cfg.HTTPServer.Timeout.Write,
		IdleTimeout:       cfg.HTTPServer.Timeout.Idle,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.HTTPServer.MaxHeaderBytes,
	}
	return server
}

// SetupGrpcServer initializes the gRPC server for the ProductService application.
func SetupGrpcServer(deps *Dependencies) *grpc.Server {
	grpcServer := grpc.NewServer()
	grpcImpl.Register(grpcServer, grpcImpl.NewServer(deps.ProductService))
	return grpcServer
}
