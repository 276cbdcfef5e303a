// internal/server/middleware.go - 中间件定义
package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"code-analyzer/internal/errs"
	"code-analyzer/internal/metrics"
	"code-analyzer/internal/utils"
	"code-analyzer/pkg/logger"
	"code-analyzer/pkg/response"
)

const HeaderRequestID = "X-Request-Id"

const ctxKeyRequestID = "requestId"

// RecoveryMiddleware panic恢复中间件
func RecoveryMiddleware(logger logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered: %v, request id %s", recovered, c.GetString(ctxKeyRequestID))
		response.Error(c, http.StatusInternalServerError, errs.ErrInternal)
		c.Abort()
	})
}

// RequestIDMiddleware 透传或生成请求ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = utils.GenerateUUID()
		}
		c.Set(ctxKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggingMiddleware 请求日志中间件
func LoggingMiddleware(logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// 处理请求
		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("[GIN] %s %s %d %s %s %s %s",
			method,
			path,
			statusCode,
			latency,
			clientIP,
			c.GetString(ctxKeyRequestID),
			errorMessage,
		)
	}
}

// MetricsMiddleware 按路由模板统计请求数，未匹配的路由记为 unmatched
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, strconv.Itoa(c.Writer.Status()))
	}
}

// CORSMiddleware CORS中间件，allowOrigins 包含 * 时允许任意来源
func CORSMiddleware(allowOrigins []string) gin.HandlerFunc {
	allowAll := len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", strings.Join([]string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding", HeaderRequestID,
		}, ", "))
		c.Header("Access-Control-Expose-Headers", HeaderRequestID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware 安全中间件
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

// RateLimitMiddleware 令牌桶限流，ratePerSecond <= 0 时不限流
func RateLimitMiddleware(ratePerSecond float64, burst int, logger logger.Logger) gin.HandlerFunc {
	if ratePerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.Warn("rate limit exceeded: %s %s", c.Request.Method, c.Request.URL.Path)
			response.Error(c, http.StatusTooManyRequests, errs.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}

// BodyLimitMiddleware 限制请求体大小，超出时处理器返回 413
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
