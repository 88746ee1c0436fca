// Package service 把匹配引擎暴露为 HTTP API（gin）。
//
// 路由分两组：/healthz 探活；/api/v1 下是推荐、解释、策略对比、
// 目录统计与运维操作（重载、排除名单管理）。
// 领域错误按 Code 映射 HTTP 状态码，响应体始终是 JSON。
package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rushteam/matchkit/core"
	"github.com/rushteam/matchkit/engine"
)

// Server 持有引擎与可选依赖，注册全部路由。
type Server struct {
	engine *engine.Engine
	store  core.KeyValueStore
	logger *zap.Logger
	router *gin.Engine
}

// Option 配置 Server 的可选依赖。
type Option func(*Server)

// WithLogger 指定访问日志与错误日志的 logger，缺省为 Nop。
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithStore 指定存储后端，开启排除名单管理接口。
func WithStore(st core.KeyValueStore) Option {
	return func(s *Server) { s.store = st }
}

// NewServer 装配路由与中间件。
func NewServer(eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine: eng,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(s.logger))
	s.router = router
	s.registerRoutes()
	return s
}

// Router 返回底层 gin 路由（测试与二次装配用）。
func (s *Server) Router() *gin.Engine { return s.router }

// Run 启动 HTTP 服务并阻塞。
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api/v1")
	api.POST("/recommend", s.recommend)
	api.POST("/explain", s.explain)
	api.POST("/compare", s.compare)
	api.GET("/stats", s.stats)
	api.GET("/services", s.listServices)
	api.POST("/reload", s.reload)

	api.GET("/exclusions", s.listExclusions)
	api.PUT("/exclusions/:id", s.addExclusion)
	api.DELETE("/exclusions/:id", s.removeExclusion)
}

// abortWithError 按领域错误码映射 HTTP 状态码并输出统一错误体。
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsInvalidInput(err) || core.IsInvalidConfig(err):
		status = http.StatusBadRequest
	case core.IsNotFound(err):
		status = http.StatusNotFound
	case core.IsNotSupported(err):
		status = http.StatusNotImplemented
	case core.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	}

	body := gin.H{"error": err.Error()}
	if derr := core.GetDomainError(err); derr != nil {
		body["code"] = derr.Code
		body["module"] = derr.Module
	}

	s.logger.Warn("request failed",
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(status, body)
}
