package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer wires repositories, services and handlers and builds the route
// tree. All state the handlers need flows through constructors, so the whole
// graph is assembled in one place.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail mailer.Mailer, logger *slog.Logger) *Server {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	codeRepo := repository.NewConfirmationCodeRepository(redisClient)

	authSvc := service.NewAuthService(userRepo, codeRepo, mail, cfg.JWTSecret, cfg.TokenTTL, cfg.ConfirmationCodeTTL)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	genreSvc := service.NewGenreService(genreRepo)
	titleSvc := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewSvc := service.NewReviewService(reviewRepo, titleRepo)
	commentSvc := service.NewCommentService(commentRepo, reviewRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	genreHandler := handler.NewGenreHandler(genreSvc)
	titleHandler := handler.NewTitleHandler(titleSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.CORSOrigins)

	// Identity is decoded once for every request; route groups decide
	// whether an anonymous caller is acceptable.
	router.Use(middleware.Authenticate(authSvc))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.SignupRatePerSecond, cfg.SignupRateBurst))
	authHandler.RegisterRoutes(auth)

	userHandler.RegisterRoutes(api.Group("/users"))
	categoryHandler.RegisterRoutes(api.Group("/categories"))
	genreHandler.RegisterRoutes(api.Group("/genres"))

	titles := api.Group("/titles")
	titleHandler.RegisterRoutes(titles)
	reviewHandler.RegisterRoutes(titles)
	commentHandler.RegisterRoutes(titles)

	return &Server{engine: router, cfg: cfg, logger: logger}
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.HTTPPort)
	s.logger.Info("http server listening", "addr", addr, "env", s.cfg.GoEnv)
	return s.engine.Run(addr)
}

// Engine exposes the router for httptest-driven tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
