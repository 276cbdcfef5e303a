package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"code-analyzer/internal/config"
	"code-analyzer/internal/dto"
	"code-analyzer/internal/metrics"
	"code-analyzer/internal/scanner"
	"code-analyzer/internal/utils"
	"code-analyzer/pkg/analyzer"
	"code-analyzer/pkg/analyzer/lang"
	"code-analyzer/pkg/analyzer/parser"
	"code-analyzer/pkg/analyzer/pool"
	"code-analyzer/pkg/analyzer/types"
	"code-analyzer/pkg/logger"
)

// ResolveService 处理代码解析相关的业务逻辑
type ResolveService interface {
	// Resolve 解析一段源码，返回元素表、汇总和诊断信息
	Resolve(ctx context.Context, req *dto.ResolveRequest) (*dto.ResolveData, error)

	// ResolveFiles 并发解析文件或目录下的源文件，单个文件失败不影响其它文件
	ResolveFiles(ctx context.Context, paths []string, renderInitializers *bool) (*dto.BatchData, error)
}

type resolveService struct {
	cfg     config.ConfigAnalyzer
	scanner scanner.ScannerInterface
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewResolveService 创建解析服务。metrics 可以为空。
func NewResolveService(cfg config.ConfigAnalyzer, scanner scanner.ScannerInterface, metrics *metrics.Metrics, logger logger.Logger) ResolveService {
	return &resolveService{
		cfg:     cfg,
		scanner: scanner,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *resolveService) Resolve(ctx context.Context, req *dto.ResolveRequest) (*dto.ResolveData, error) {
	if req == nil {
		return nil, errors.New("resolve: nil request")
	}
	language, err := s.language(req.Language)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, req.Code, language, s.renderInitializers(req.RenderInitializers))
}

func (s *resolveService) ResolveFiles(ctx context.Context, paths []string, renderInitializers *bool) (*dto.BatchData, error) {
	var sources []string
	for _, p := range paths {
		found, err := s.scanner.CollectSources(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	sources = utils.UniqueStringSlice(sources)

	s.logger.Info("resolving %d source files with concurrency %d", len(sources), s.cfg.Concurrency)
	startTime := time.Now()
	render := s.renderInitializers(renderInitializers)

	results := make([]dto.FileResult, len(sources))
	taskPool := pool.NewTaskPool(s.cfg.Concurrency, s.logger)
	defer taskPool.Close()

	var mu sync.Mutex
	for i, path := range sources {
		results[i].Path = path
		_, err := taskPool.Submit(ctx, func(ctx context.Context, taskID uint64) error {
			data, err := s.resolveFile(ctx, path, render)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Data = data
			return nil
		})
		if err != nil {
			break
		}
	}
	// 任务本身不返回错误，这里只会拿到 panic
	if err := taskPool.Wait(); err != nil {
		s.logger.Error("resolve files: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := &dto.BatchData{Files: results}
	for i := range results {
		if results[i].Data == nil {
			if results[i].Error == "" {
				results[i].Error = "resolve aborted"
			}
			batch.Failed++
			continue
		}
		batch.Summary.Merge(results[i].Data.Summary)
	}
	if batch.Summary.ByKind == nil {
		batch.Summary.ByKind = make(map[types.ElementKind]int)
		batch.Summary.CyclomaticComplexity = 1
	}
	s.logger.Info("resolved %d source files, %d failed, cost %v", len(sources), batch.Failed, time.Since(startTime))
	return batch, nil
}

func (s *resolveService) resolveFile(ctx context.Context, path string, render bool) (*dto.ResolveData, error) {
	language, err := lang.InferLanguage(path)
	if err != nil {
		return nil, err
	}
	content, err := s.scanner.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, string(content), language, render)
}

func (s *resolveService) analyze(ctx context.Context, code string, language lang.Language, render bool) (*dto.ResolveData, error) {
	startTime := time.Now()
	result, err := analyzer.New(s.logger, analyzer.Options{RenderInitializers: render}).Analyze(ctx, code, language)
	s.metrics.ObserveResolve(string(language), resultLabel(err), time.Since(startTime))
	if err != nil {
		return nil, err
	}

	byKind := make(map[string]int, len(result.Summary.ByKind))
	for kind, n := range result.Summary.ByKind {
		byKind[string(kind)] = n
	}
	s.metrics.AddElements(byKind, result.Summary.Placeholders)

	elements := result.Elements
	if elements == nil {
		elements = types.Table{}
	}
	return &dto.ResolveData{
		Language:    string(result.Language),
		Elements:    elements,
		Summary:     result.Summary,
		Diagnostics: result.Diagnostics,
	}, nil
}

// language 为空时取配置的默认语言
func (s *resolveService) language(name string) (lang.Language, error) {
	if name == "" {
		name = s.cfg.Language
	}
	if name == "" {
		return analyzer.DefaultLanguage, nil
	}
	language, err := lang.ToLanguage(name)
	if err != nil {
		return "", fmt.Errorf("resolve: %w", err)
	}
	return language, nil
}

func (s *resolveService) renderInitializers(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.cfg.RenderInitializers
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, parser.ErrSyntax):
		return metrics.ResultSyntaxError
	}
	return metrics.ResultError
}
