package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"code-analyzer/internal/dto"
	"code-analyzer/internal/report"
	"code-analyzer/internal/scanner"
	"code-analyzer/internal/service"
	"code-analyzer/internal/utils"
)

var ErrResolveFailed = errors.New("some sources could not be resolved")

const stdinName = "<stdin>"

// ResolveCmd represents the resolve command
type ResolveCmd struct {
	Paths        []string `arg:"" optional:"" help:"Source files or directories (default: stdin)" type:"path"`
	Lang         string   `short:"l" help:"Language of stdin input (javascript, typescript); files use their extension"`
	Format       string   `short:"f" help:"Output format" default:"json" enum:"json,table,yaml"`
	Initializers bool     `short:"i" help:"Render declaration initializers into the value column"`
	Stats        bool     `short:"s" help:"Include summary statistics and diagnostics"`
}

// Run executes the resolve command. Output is written before a failure is reported.
func (cmd *ResolveCmd) Run(ctx *Context) error {
	format, err := report.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	cfg := ctx.Config
	fileScanner := scanner.NewFileScanner(ctx.Logger, &scanner.ScannerConfig{
		FolderIgnorePatterns: cfg.Scan.FolderIgnorePatterns,
		FileIgnorePatterns:   cfg.Scan.FileIgnorePatterns,
		MaxFileSizeKB:        cfg.Analyzer.MaxFileSizeKB,
		MaxFileCount:         cfg.Analyzer.MaxFileCount,
	})
	resolveService := service.NewResolveService(cfg.Analyzer, fileScanner, nil, ctx.Logger)

	var initializers *bool
	if cmd.Initializers {
		initializers = &cmd.Initializers
	}

	var batch *dto.BatchData
	if len(cmd.Paths) == 0 {
		batch, err = cmd.resolveReader(resolveService, ctx.Stdin, initializers)
	} else {
		batch, err = resolveService.ResolveFiles(context.Background(), cmd.Paths, initializers)
	}
	if err != nil {
		return err
	}

	if wd, err := os.Getwd(); err == nil {
		for i := range batch.Files {
			batch.Files[i].Path = utils.DisplayPath(wd, batch.Files[i].Path)
		}
	}

	if err := report.NewFormatter(format, cmd.Stats).Format(batch, ctx.Stdout); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if batch.Failed > 0 {
		// json/yaml 的单文件输出不含错误信息，这里补到 stderr
		for _, f := range batch.Files {
			if f.Error != "" {
				fmt.Fprintf(ctx.Stderr, "%s: %s\n", f.Path, f.Error)
			}
		}
		return fmt.Errorf("%w: %d of %d", ErrResolveFailed, batch.Failed, len(batch.Files))
	}
	return nil
}

// resolveReader 将 stdin 作为一个源文件解析，语法错误记为失败而不是直接返回
func (cmd *ResolveCmd) resolveReader(resolveService service.ResolveService, reader io.Reader, initializers *bool) (*dto.BatchData, error) {
	input, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	data, err := resolveService.Resolve(context.Background(), &dto.ResolveRequest{
		Code:               string(input),
		Language:           cmd.Lang,
		RenderInitializers: initializers,
	})
	file := dto.FileResult{Path: stdinName}
	batch := &dto.BatchData{}
	if err != nil {
		file.Error = err.Error()
		batch.Failed = 1
	} else {
		file.Data = data
		batch.Summary = data.Summary
	}
	batch.Files = []dto.FileResult{file}
	return batch, nil
}
