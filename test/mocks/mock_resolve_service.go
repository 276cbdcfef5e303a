package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"code-analyzer/internal/dto"
)

type MockResolveService struct {
	mock.Mock
}

func (m *MockResolveService) Resolve(ctx context.Context, req *dto.ResolveRequest) (*dto.ResolveData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResolveData), args.Error(1)
}

func (m *MockResolveService) ResolveFiles(ctx context.Context, paths []string, renderInitializers *bool) (*dto.BatchData, error) {
	args := m.Called(ctx, paths, renderInitializers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchData), args.Error(1)
}
