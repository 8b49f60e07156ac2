package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCellRecognizer is a mock implementation of port.CellRecognizer.
type MockCellRecognizer struct {
	mock.Mock
}

func (m *MockCellRecognizer) RecognizeCell(ctx context.Context, cropJPEG []byte, fieldContext string) (string, error) {
	args := m.Called(ctx, cropJPEG, fieldContext)
	return args.String(0), args.Error(1)
}
