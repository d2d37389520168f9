package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghaniswara/people-swipe/internal/config"
	peopleRepo "github.com/ghaniswara/people-swipe/internal/repository/people"
	reactionRepo "github.com/ghaniswara/people-swipe/internal/repository/reaction"
	"github.com/ghaniswara/people-swipe/internal/routes"
	"github.com/ghaniswara/people-swipe/internal/usecase/feed"
	"github.com/ghaniswara/people-swipe/internal/usecase/reaction"
	"github.com/go-redis/redis"
	"github.com/labstack/echo"
	echoMiddleware "github.com/labstack/echo/middleware"
	"gorm.io/gorm"
)

type Server struct {
	writer     io.Writer
	httpServer *http.Server
	echo       *echo.Echo
	database   *gorm.DB
	cache      *redis.Client
}

// NewServer wires the HTTP surface over database. cache may be nil.
func NewServer(w io.Writer, cfg config.IConfig, database *gorm.DB, cache *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.LoggerWithConfig(echoMiddleware.LoggerConfig{Output: w}))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.GetList("CORS_ALLOWED_ORIGINS"),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Device-Id"},
	}))

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Get("PORT"),
			Handler:           e,
			ReadHeaderTimeout: 10 * time.Second,
		},
		echo:     e,
		database: database,
		cache:    cache,
	}

	server.RegisterRoutes(e)
	return server
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	people := peopleRepo.New(s.database)
	reactions := reactionRepo.NewReactionRepo(s.database, s.cache)

	routes.InitRoutes(e,
		feed.NewFeedUseCase(people),
		reaction.NewReactionUseCase(people, reactions),
	)

	e.GET("/healthz", s.handleHealthCheck)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	sqlDB, err := s.database.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}

	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
