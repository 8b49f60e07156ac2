package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"posyandu/internal/domain"
)

// MockExtractedRowRepo is a mock implementation of port.ExtractedRowRepository.
type MockExtractedRowRepo struct {
	mock.Mock
}

func (m *MockExtractedRowRepo) InsertRows(ctx context.Context, records []domain.ExtractedRowRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockExtractedRowRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.ExtractedRowRecord, error) {
	args := m.Called(ctx, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExtractedRowRecord), args.Error(1)
}
