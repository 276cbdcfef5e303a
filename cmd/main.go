// cmd/main.go - Program entry
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"code-analyzer/internal/config"
	"code-analyzer/pkg/logger"
)

const appName = "code-analyzer"

var (
	// set by the linker during build
	osName   string
	archName string
	version  string
)

// Context 命令执行时共享的依赖
type Context struct {
	Config config.Config
	Logger logger.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	Config   string     `help:"Configuration file path" default:"code-analyzer.toml" type:"path"`
	LogLevel string     `help:"Log level (debug, info, warn, error), overrides the configuration file"`
	Resolve  ResolveCmd `cmd:"" help:"Resolve JavaScript/TypeScript sources into an element table"`
	Serve    ServeCmd   `cmd:"" help:"Start the HTTP resolve service"`
	Version  VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	v := version
	if v == "" {
		v = "dev"
	}
	fmt.Fprintf(ctx.Stdout, "%s %s", appName, v)
	if osName != "" || archName != "" {
		fmt.Fprintf(ctx.Stdout, " (%s/%s)", osName, archName)
	}
	fmt.Fprintln(ctx.Stdout)
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(appName),
		kong.Description("Flatten JavaScript/TypeScript control flow into an ordered element table."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	config.SetConfig(cfg)

	// Initialize logging system
	appLogger, err := logger.NewLogger(cfg.Log.Dir, cfg.Log.Level, appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging system: %v\n", err)
		os.Exit(1)
	}
	appLogger.Debug("OS: %s, Arch: %s, App: %s, Version: %s, Starting...", osName, archName, appName, version)

	appCtx := &Context{
		Config: cfg,
		Logger: appLogger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	err = kctx.Run(appCtx)
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
