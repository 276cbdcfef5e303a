package mocks

import (
	"code-analyzer/internal/scanner"

	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/stretchr/testify/mock"
)

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) SetScannerConfig(config *scanner.ScannerConfig) {
	m.Called(config)
}

func (m *MockScanner) GetScannerConfig() *scanner.ScannerConfig {
	args := m.Called()
	return args.Get(0).(*scanner.ScannerConfig)
}

func (m *MockScanner) LoadIgnoreRules(root string) *gitignore.GitIgnore {
	args := m.Called(root)
	return args.Get(0).(*gitignore.GitIgnore)
}

func (m *MockScanner) CollectSources(root string) ([]string, error) {
	args := m.Called(root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockScanner) ReadSource(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
