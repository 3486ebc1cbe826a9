package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/config"
	"github.com/Ectechz/face-emotion/internal/deepface"
	"github.com/Ectechz/face-emotion/internal/handler"
	"github.com/Ectechz/face-emotion/internal/repository"
	"github.com/Ectechz/face-emotion/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	tempRepo, err := repository.NewTempRepository(&cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp repository: %w", err)
	}

	backend := deepface.NewClient(&cfg.DeepFace, log)

	emotionService := service.NewEmotionService(tempRepo, backend, log)

	h := handler.NewHandler(emotionService, cfg, log)

	router.GET("/", h.Root)
	router.GET("/health", h.HealthCheck)
	router.POST("/analyze-emotion", h.AnalyzeEmotion)

	server := &Server{
		httpServer: &http.Server{
			Addr:        cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:     router,
			ReadTimeout: 10 * time.Second,
			// Model inference dominates the request; the write timeout
			// has to outlast the backend call.
			WriteTimeout:   cfg.DeepFace.Timeout + 10*time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.DeepFace.URL))

	return server, nil
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
