// internal/dto/resolve.go - 解析接口的请求和响应
package dto

import (
	"code-analyzer/pkg/analyzer/resolver"
	"code-analyzer/pkg/analyzer/stats"
	"code-analyzer/pkg/analyzer/types"
)

// ResolveRequest 单段代码解析请求
type ResolveRequest struct {
	Code               string `json:"code"`
	Language           string `json:"language,omitempty"`
	RenderInitializers *bool  `json:"renderInitializers,omitempty"` // 为空时取配置
}

// ResolveData 单段代码解析结果
type ResolveData struct {
	Language    string                `json:"language"`
	Elements    types.Table           `json:"elements"`
	Summary     stats.Summary         `json:"summary"`
	Diagnostics []resolver.Diagnostic `json:"diagnostics,omitempty"`
}

// FileResult 批量解析中单个文件的结果，Error 非空时 Data 为空
type FileResult struct {
	Path  string       `json:"path"`
	Data  *ResolveData `json:"data,omitempty"`
	Error string       `json:"error,omitempty"`
}

// BatchData 批量解析结果，Files 按收集顺序排列，重复路径只出现一次
type BatchData struct {
	Files   []FileResult  `json:"files"`
	Summary stats.Summary `json:"summary"`
	Failed  int           `json:"failed"`
}

type HealthData struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
}
