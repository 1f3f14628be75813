package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/api/http"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/api/middleware"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/codegen"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/domain/tutor"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/config"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/logging"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/monitoring"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/tracing"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers/completion"
	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/providers/vision"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	tracer  *tracing.Tracer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing code generation server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("completion_model", cfg.Completion.Model),
		zap.String("vision_model", cfg.Vision.Model),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("webgen", logger.Named("tracing").Logger)

	completer := completion.New(completion.Config{
		APIKey:         cfg.Completion.APIKey,
		BaseURL:        cfg.Completion.BaseURL,
		Model:          cfg.Completion.Model,
		MaxTokens:      cfg.Completion.MaxTokens,
		Timeout:        cfg.Completion.Timeout,
		BreakerEnabled: cfg.Completion.BreakerEnabled,
		RateLimit:      cfg.Completion.RateLimit,
	}, logger.Named("completion").Logger).WithMetrics(metrics).WithTracer(tracer)
	if !completer.Configured() {
		logger.Warn("GROQ_API_KEY is not set; code generation requests will fail")
	}

	describer, err := vision.New(ctx, vision.Config{
		APIKey: cfg.Vision.APIKey,
		Model:  cfg.Vision.Model,
	}, logger.Named("vision").Logger)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	describer.WithMetrics(metrics).WithTracer(tracer)
	if !describer.Configured() {
		logger.Warn("GEMINI_API_KEY is not set; image analysis requests will fail")
	}

	templates := codegen.DefaultTemplates()
	if cfg.Prompts.TemplatesFile != "" {
		templates, err = codegen.LoadTemplates(cfg.Prompts.TemplatesFile)
		if err != nil {
			tracer.Close()
			return nil, err
		}
		logger.Info("Loaded application templates",
			zap.String("file", cfg.Prompts.TemplatesFile),
			zap.Int("types", len(templates.Types())),
		)
	}

	svc := codegen.NewService(completer, describer, codegen.NewPromptBuilder(templates), logger.Named("codegen").Logger).
		WithMetrics(metrics)
	tutorSvc := tutor.New(completer, codegen.Normalize, logger.Named("tutor").Logger).
		WithMetrics(metrics)

	handlers := apihttp.NewHandlers(svc, tutorSvc, apihttp.ProviderStatus{
		Completion: completer.Configured(),
		Vision:     describer.Configured(),
	}, cfg.Server.MaxUploadBytes(), logger.Named("http").Logger).WithMetrics(metrics)

	router := newRouter(cfg, logger, tracer, metrics)
	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(monitoring.Handler(metrics)))

	var handler http.Handler = router
	if cfg.Server.CompressionEnabled {
		handler = gzhttp.GzipHandler(router)
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

func newRouter(cfg *config.Config, logger *logging.Logger, tracer *tracing.Tracer, metrics *monitoring.Metrics) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(middleware.RequestLogger(logger.Named("access").Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}
	return router
}

// Handler returns the root HTTP handler, including compression when enabled
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	s.Close()
	return err
}

// Close releases background resources
func (s *Server) Close() {
	s.tracer.Close()
	// Sync logger before exit
	s.logger.Sync()
}
