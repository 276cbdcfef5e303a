package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"code-analyzer/internal/config"
	"code-analyzer/internal/handler"
	"code-analyzer/internal/metrics"
	"code-analyzer/internal/scanner"
	"code-analyzer/internal/server"
	"code-analyzer/internal/service"
	"code-analyzer/pkg/logger"
)

// BaseIntegrationTestSuite 在进程内启动完整的服务栈
type BaseIntegrationTestSuite struct {
	suite.Suite
	baseURL    string
	httpServer *httptest.Server
	metrics    *metrics.Metrics
}

// SetupSuite 设置测试套件
func (s *BaseIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()
	// 集成测试不限流
	cfg.Server.RateLimit = 0

	log := logger.NewNopLogger()
	s.metrics = metrics.New()
	fileScanner := scanner.NewFileScanner(log, &scanner.ScannerConfig{
		FolderIgnorePatterns: cfg.Scan.FolderIgnorePatterns,
		FileIgnorePatterns:   cfg.Scan.FileIgnorePatterns,
		MaxFileSizeKB:        cfg.Analyzer.MaxFileSizeKB,
		MaxFileCount:         cfg.Analyzer.MaxFileCount,
	})
	resolveService := service.NewResolveService(cfg.Analyzer, fileScanner, s.metrics, log)
	srv := server.NewServer(cfg.Server, handler.NewResolveHandler(resolveService, "test", log), s.metrics, log)

	s.httpServer = httptest.NewServer(srv.Engine())
	s.baseURL = s.httpServer.URL
}

// TearDownSuite 关闭测试服务器
func (s *BaseIntegrationTestSuite) TearDownSuite() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

// CreatePOSTRequest 创建POST请求
func (s *BaseIntegrationTestSuite) CreatePOSTRequest(url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// SendRequest 发送HTTP请求，返回状态码和原始响应体
func (s *BaseIntegrationTestSuite) SendRequest(req *http.Request) (int, []byte) {
	resp, err := s.httpServer.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, body
}

// PostResolve 调用解析接口
func (s *BaseIntegrationTestSuite) PostResolve(payload map[string]any) (int, map[string]any, []byte) {
	jsonData, err := json.Marshal(payload)
	s.Require().NoError(err)
	req, err := s.CreatePOSTRequest(s.baseURL+"/code-analyzer/api/v1/resolve", jsonData)
	s.Require().NoError(err)

	status, body := s.SendRequest(req)
	var response map[string]any
	s.Require().NoError(json.Unmarshal(body, &response), string(body))
	return status, response, body
}

// ValidateCommonResponse 验证通用响应格式
func (s *BaseIntegrationTestSuite) ValidateCommonResponse(t *testing.T, response map[string]any, expectedCode string) {
	if expectedCode != "" {
		s.Equal(expectedCode, response["code"])
	}

	s.Contains(response, "code")
	s.Contains(response, "message")
	s.Contains(response, "success")

	if success, ok := response["success"].(bool); ok && success {
		s.Contains(response, "data")
	}
}
