package main

import (
	"net/http"
	"os"

	"github.com/lychee-technology/schemagen"
	"github.com/lychee-technology/schemagen/internal"
	"go.uber.org/zap"
)

// Server serves generated JSON-Schema documents for registered models.
type Server struct {
	registry internal.ModelRegistry
	factory  *schemagen.Factory
	mux      *http.ServeMux
}

// NewServer creates a new Server instance.
func NewServer(registry internal.ModelRegistry, factory *schemagen.Factory) *Server {
	return &Server{
		registry: registry,
		factory:  factory,
		mux:      http.NewServeMux(),
	}
}

// RegisterRoutes registers all API routes.
func (s *Server) RegisterRoutes() {
	s.mux.HandleFunc("/schemas/", s.handleSchema)
	s.mux.HandleFunc("/models", s.handleListModels)
}

// Start starts the HTTP server on the given port.
func (s *Server) Start(port string) error {
	zap.S().Infow("starting schema server", "port", port)
	return http.ListenAndServe(":"+port, s.mux)
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	modelDir := getEnv("MODEL_DIR", "models")
	configFile := os.Getenv("GENERATION_CONFIG")
	hrefBase := getEnv("HREF_BASE", "http://localhost:8080/schemas/")
	port := getEnv("PORT", "8080")

	cfg, err := internal.LoadGenerationConfig(configFile, hrefBase)
	if err != nil {
		sugar.Fatalf("load generation config: %v", err)
	}

	registry, err := internal.NewFileModelRegistry(modelDir)
	if err != nil {
		sugar.Fatalf("load model registry: %v", err)
	}
	sugar.Infow("model registry loaded", "modelDir", modelDir, "models", len(registry.ListModels()))

	factory, err := schemagen.NewFactory(cfg)
	if err != nil {
		sugar.Fatalf("create schema factory: %v", err)
	}

	server := NewServer(registry, factory)
	server.RegisterRoutes()
	if err := server.Start(port); err != nil {
		sugar.Fatalf("server stopped: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
