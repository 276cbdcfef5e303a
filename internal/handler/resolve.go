// internal/handler/resolve.go - 代码解析HTTP处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"code-analyzer/internal/dto"
	"code-analyzer/internal/errs"
	"code-analyzer/internal/service"
	"code-analyzer/pkg/analyzer/lang"
	"code-analyzer/pkg/logger"
	"code-analyzer/pkg/response"
)

// ResolveHandler 代码解析接口
type ResolveHandler struct {
	resolveService service.ResolveService
	version        string
	logger         logger.Logger
}

// NewResolveHandler 创建解析处理器
func NewResolveHandler(resolveService service.ResolveService, version string, logger logger.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolveService: resolveService,
		version:        version,
		logger:         logger,
	}
}

// Resolve 解析一段源码
// @Summary 解析源码
// @Description 将一段 JavaScript/TypeScript 源码解析为按出现顺序排列的元素表
// @Tags resolve
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "源码及解析选项"
// @Success 200 {object} response.Response[dto.ResolveData] "成功"
// @Failure 400 {object} response.Response[any] "请求参数错误、语法错误或语言不支持"
// @Failure 413 {object} response.Response[any] "请求体过大"
// @Failure 500 {object} response.Response[any] "服务器内部错误"
// @Router /code-analyzer/api/v1/resolve [post]
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("request body exceeds %d bytes", tooLarge.Limit)
			response.Error(c, http.StatusRequestEntityTooLarge, errs.ErrBodyTooLarge)
			return
		}
		h.logger.Error("invalid request format: %v", err)
		response.Error(c, http.StatusBadRequest, errs.NewInvalidParamErr("body", err))
		return
	}

	h.logger.Debug("resolve request: language=%s, size=%d", req.Language, len(req.Code))

	data, err := h.resolveService.Resolve(c.Request.Context(), &req)
	if err != nil {
		coded, isClient := errs.FromAnalyzeError(err)
		if isClient {
			h.logger.Info("resolve rejected: %v", err)
			response.Error(c, http.StatusBadRequest, coded)
			return
		}
		h.logger.Error("resolve failed: %v", err)
		response.Error(c, http.StatusInternalServerError, coded)
		return
	}
	response.OkJson(c, data)
}

// Health 健康检查
// @Summary 健康检查
// @Tags system
// @Produce json
// @Success 200 {object} response.Response[dto.HealthData] "成功"
// @Router /health [get]
func (h *ResolveHandler) Health(c *gin.Context) {
	languages := make([]string, 0)
	for _, l := range lang.GetAllSupportedLanguages() {
		languages = append(languages, string(l))
	}
	response.OkJson(c, dto.HealthData{
		Status:    "ok",
		Version:   h.version,
		Languages: languages,
	})
}
