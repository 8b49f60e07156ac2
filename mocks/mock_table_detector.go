package mocks

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"posyandu/internal/domain"
)

// MockTableDetector is a mock implementation of port.TableDetector.
type MockTableDetector struct {
	mock.Mock
}

func (m *MockTableDetector) Detect(ctx context.Context, img image.Image) ([]domain.TableCell, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableCell), args.Error(1)
}
