package server

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"salesdash/internal/config"
	"salesdash/internal/exporter"
	"salesdash/internal/importer"
	"salesdash/internal/log"
	"salesdash/internal/store"
)

// Server is the HTTP layer driving uploads, previews and registry reads.
type Server struct {
	router      *gin.Engine
	store       *store.Store
	coordinator *importer.Coordinator
	exporter    *exporter.Exporter
	log         *log.Logger
	maxUploadMB int
}

// NewServer wires the store, coordinator and routes.
func NewServer(cfg *config.AppConfig, logger *log.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Error("could not prepare data directory, falling back to configured path",
			"dir", cfg.Data.DataDir, "err", err)
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "salesdash.db"))
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:      gin.Default(),
		store:       st,
		coordinator: importer.NewCoordinator(st, logger, cfg.Ingest.BatchSize),
		exporter:    exporter.NewExporter(st),
		log:         logger.WithComponent("server"),
		maxUploadMB: cfg.Ingest.MaxUploadMB,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.POST("/uploads", s.handleUpload)
		api.GET("/uploads/:id", s.handleGetUpload)
		api.POST("/uploads/:id/confirm", s.handleConfirm)
		api.GET("/stores", s.handleListStores)
		api.GET("/products", s.handleListProducts)
		api.GET("/audit", s.handleListAudit)
		api.GET("/export", s.handleExport)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the underlying store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Store exposes the store for tests.
func (s *Server) Store() *store.Store {
	return s.store
}
