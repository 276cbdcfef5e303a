// internal/server/routes.go - API路由配置
package server

import (
	"github.com/gin-gonic/gin"

	"code-analyzer/internal/handler"
)

const apiPrefix = "/code-analyzer/api/v1"

// SetupResolveRoutes 设置解析路由，解析接口单独限流和限制请求体大小
func (s *server) SetupResolveRoutes(router *gin.Engine, resolveHandler *handler.ResolveHandler) {
	api := router.Group(apiPrefix)
	{
		api.POST("/resolve",
			RateLimitMiddleware(s.cfg.RateLimit, s.cfg.RateBurst, s.logger),
			BodyLimitMiddleware(int64(s.cfg.MaxBodyKB)*1024),
			resolveHandler.Resolve)
	}
}
