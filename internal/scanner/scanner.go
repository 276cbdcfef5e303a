// scanner/scanner.go - 源文件收集
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"

	"code-analyzer/pkg/analyzer/lang"
	"code-analyzer/pkg/logger"
)

var ErrFileTooLarge = errors.New("file too large")

type ScannerConfig struct {
	FolderIgnorePatterns []string
	FileIgnorePatterns   []string
	MaxFileSizeKB        int
	MaxFileCount         int
}

type ScannerInterface interface {
	SetScannerConfig(config *ScannerConfig)
	GetScannerConfig() *ScannerConfig
	LoadIgnoreRules(root string) *gitignore.GitIgnore
	CollectSources(root string) ([]string, error)
	ReadSource(path string) ([]byte, error)
}

type FileScanner struct {
	logger        logger.Logger
	scannerConfig *ScannerConfig
}

func NewFileScanner(logger logger.Logger, config *ScannerConfig) ScannerInterface {
	return &FileScanner{
		logger:        logger,
		scannerConfig: config,
	}
}

func (s *FileScanner) SetScannerConfig(config *ScannerConfig) {
	if config == nil {
		return
	}
	s.scannerConfig = config
}

func (s *FileScanner) GetScannerConfig() *ScannerConfig {
	if s.scannerConfig == nil {
		return &ScannerConfig{}
	}
	return s.scannerConfig
}

// LoadIgnoreRules 合并配置中的忽略规则与 root 下的 .gitignore
func (s *FileScanner) LoadIgnoreRules(root string) *gitignore.GitIgnore {
	cfg := s.GetScannerConfig()
	lines := make([]string, 0, len(cfg.FolderIgnorePatterns)+len(cfg.FileIgnorePatterns))
	lines = append(lines, cfg.FolderIgnorePatterns...)
	lines = append(lines, cfg.FileIgnorePatterns...)

	content, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err == nil {
		for _, line := range bytes.Split(content, []byte{'\n'}) {
			line = bytes.TrimSpace(line)
			if len(line) > 0 && !bytes.HasPrefix(line, []byte{'#'}) {
				lines = append(lines, string(line))
			}
		}
	} else if !os.IsNotExist(err) {
		s.logger.Warn("read .gitignore in %s: %v", root, err)
	}
	return gitignore.CompileIgnoreLines(lines...)
}

// CollectSources 返回 root 下所有可解析的源文件，按路径字典序。root 本身是文件时直接返回。
func (s *FileScanner) CollectSources(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}
	if !info.IsDir() {
		if _, err := lang.InferLanguage(root); err != nil {
			return nil, fmt.Errorf("collect sources %s: %w", root, err)
		}
		return []string{root}, nil
	}

	s.logger.Info("start collecting sources in %s", root)
	startTime := time.Now()
	cfg := s.GetScannerConfig()
	ignore := s.LoadIgnoreRules(root)

	var sources []string
	var skipped int
	stop := errors.New("file count limit reached")
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("walk %s: %v", path, err)
			return nil
		}
		if path == root {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if ignore.MatchesPath(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore.MatchesPath(relPath) {
			skipped++
			return nil
		}
		if _, err := lang.InferLanguage(path); err != nil {
			return nil
		}
		if cfg.MaxFileCount > 0 && len(sources) >= cfg.MaxFileCount {
			s.logger.Warn("file count limit %d reached in %s", cfg.MaxFileCount, root)
			return stop
		}
		sources = append(sources, path)
		return nil
	})
	if err != nil && !errors.Is(err, stop) {
		return nil, fmt.Errorf("collect sources in %s: %w", root, err)
	}

	s.logger.Info("collected %d sources in %s, %d ignored, cost %v",
		len(sources), root, skipped, time.Since(startTime))
	return sources, nil
}

// ReadSource 读取文件内容，超过 MaxFileSizeKB 返回 ErrFileTooLarge
func (s *FileScanner) ReadSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if maxKB := s.GetScannerConfig().MaxFileSizeKB; maxKB > 0 && info.Size() > int64(maxKB)*1024 {
		return nil, fmt.Errorf("%s: %w (%d bytes)", path, ErrFileTooLarge, info.Size())
	}
	return os.ReadFile(path)
}
