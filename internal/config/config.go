// config.go - service and analyzer configuration

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ConfigServer struct {
	Addr                string   `toml:"addr"`
	ReadTimeoutSeconds  int      `toml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int      `toml:"writeTimeoutSeconds"`
	MaxBodyKB           int      `toml:"maxBodyKB"`
	RateLimit           float64  `toml:"rateLimit"` // requests per second, <= 0 disables
	RateBurst           int      `toml:"rateBurst"`
	AllowOrigins        []string `toml:"allowOrigins"`
}

type ConfigLog struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"` // empty: stderr only
}

type ConfigAnalyzer struct {
	Language           string `toml:"language"`
	RenderInitializers bool   `toml:"renderInitializers"`
	Concurrency        int    `toml:"concurrency"`
	MaxFileSizeKB      int    `toml:"maxFileSizeKB"`
	MaxFileCount       int    `toml:"maxFileCount"`
}

type ConfigScan struct {
	FolderIgnorePatterns []string `toml:"folderIgnorePatterns"`
	FileIgnorePatterns   []string `toml:"fileIgnorePatterns"`
}

type Config struct {
	Server   ConfigServer   `toml:"server"`
	Log      ConfigLog      `toml:"log"`
	Analyzer ConfigAnalyzer `toml:"analyzer"`
	Scan     ConfigScan     `toml:"scan"`
}

var DefaultConfigServer = ConfigServer{
	Addr:                "localhost:11380",
	ReadTimeoutSeconds:  10,
	WriteTimeoutSeconds: 30,
	MaxBodyKB:           1024,
	RateLimit:           50,
	RateBurst:           100,
	AllowOrigins:        []string{"*"},
}

var DefaultConfigLog = ConfigLog{
	Level: "info",
}

var DefaultConfigAnalyzer = ConfigAnalyzer{
	Language:      "javascript",
	Concurrency:   4,
	MaxFileSizeKB: 1024,
	MaxFileCount:  10000,
}

var DefaultFileIgnorePatterns = []string{
	".*",
	"*.min.js", "*.bundle.js", "*.map",
	"*.d.ts",
}

var DefaultFolderIgnorePatterns = []string{
	// 点号开头的目录
	".*",
	"logs/", "temp/", "tmp/", "node_modules/",
	"bin/", "dist/", "build/", "out/", "coverage/",
	"vendor/",
}

var DefaultConfigScan = ConfigScan{
	FolderIgnorePatterns: DefaultFolderIgnorePatterns,
	FileIgnorePatterns:   DefaultFileIgnorePatterns,
}

// DefaultConfig returns a copy of the defaults; the slices are cloned so a
// decoded file never writes into the package-level patterns.
func DefaultConfig() Config {
	c := Config{
		Server:   DefaultConfigServer,
		Log:      DefaultConfigLog,
		Analyzer: DefaultConfigAnalyzer,
		Scan:     DefaultConfigScan,
	}
	c.Server.AllowOrigins = slices.Clone(c.Server.AllowOrigins)
	c.Scan.FolderIgnorePatterns = slices.Clone(c.Scan.FolderIgnorePatterns)
	c.Scan.FileIgnorePatterns = slices.Clone(c.Scan.FileIgnorePatterns)
	return c
}

var (
	mu     sync.RWMutex
	config = DefaultConfig()
)

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return config
}

func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	config = c
}

// Load reads a TOML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is empty")
	}
	if c.Analyzer.Concurrency <= 0 {
		return fmt.Errorf("analyzer.concurrency must be positive, got %d", c.Analyzer.Concurrency)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		return fmt.Errorf("server.rateBurst must be positive when rateLimit is set")
	}
	return nil
}

func (s ConfigServer) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ConfigServer) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Encode writes c as TOML.
func Encode(c Config) ([]byte, error) {
	return toml.Marshal(c)
}
