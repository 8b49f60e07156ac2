package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"posyandu/internal/port"
)

// MockLayoutAnalyzer is a mock implementation of port.LayoutAnalyzer.
type MockLayoutAnalyzer struct {
	mock.Mock
}

func (m *MockLayoutAnalyzer) Analyze(ctx context.Context, imageJPEG []byte) ([]port.LayoutRegion, error) {
	args := m.Called(ctx, imageJPEG)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.LayoutRegion), args.Error(1)
}
