// internal/server/router.go - 路由配置和服务器初始化
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"code-analyzer/internal/config"
	"code-analyzer/internal/handler"
	"code-analyzer/internal/metrics"
	"code-analyzer/pkg/logger"
)

// Server 服务器接口
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
	Engine() *gin.Engine
}

// NewServer 创建HTTP服务器，路由在创建时注册完成。metrics 为空时不暴露 /metrics。
func NewServer(
	cfg config.ConfigServer,
	resolveHandler *handler.ResolveHandler,
	metrics *metrics.Metrics,
	logger logger.Logger,
) Server {
	s := &server{
		cfg:            cfg,
		resolveHandler: resolveHandler,
		metrics:        metrics,
		logger:         logger,
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s.engine = gin.New()
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

type server struct {
	cfg            config.ConfigServer
	engine         *gin.Engine
	resolveHandler *handler.ResolveHandler
	metrics        *metrics.Metrics
	logger         logger.Logger
	httpServer     *http.Server
}

// Start 启动服务器，阻塞直到服务器关闭。正常关闭时返回 nil。
func (s *server) Start() error {
	s.httpServer = &http.Server{
		Addr:           s.cfg.Addr,
		Handler:        s.engine,
		ReadTimeout:    s.cfg.ReadTimeout(),
		WriteTimeout:   s.cfg.WriteTimeout(),
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	s.logger.Info("starting HTTP server on %s", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器
func (s *server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.logger.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Engine 获取Gin引擎（用于测试）
func (s *server) Engine() *gin.Engine {
	return s.engine
}

// setupMiddleware 设置中间件
func (s *server) setupMiddleware() {
	s.engine.Use(RecoveryMiddleware(s.logger))
	s.engine.Use(RequestIDMiddleware())
	s.engine.Use(LoggingMiddleware(s.logger))
	s.engine.Use(MetricsMiddleware(s.metrics))
	s.engine.Use(CORSMiddleware(s.cfg.AllowOrigins))
	s.engine.Use(SecurityMiddleware())
}

// setupRoutes 设置路由
func (s *server) setupRoutes() {
	s.engine.GET("/health", s.resolveHandler.Health)
	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	s.SetupResolveRoutes(s.engine, s.resolveHandler)

	// 404处理
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "endpoint not found",
		})
	})

	// 405处理
	s.engine.HandleMethodNotAllowed = true
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"message": "method not allowed",
		})
	})
}
