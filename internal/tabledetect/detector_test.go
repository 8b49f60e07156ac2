package tabledetect_test

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"posyandu/internal/domain"
	"posyandu/internal/port"
	"posyandu/internal/tabledetect"
	"posyandu/mocks"
)

func TestFallbackDetector_FirstStrategyWins(t *testing.T) {
	img := imaging.New(100, 60, color.White)
	cells := []domain.TableCell{{RowIdx: 0, ColIdx: 0, X2: 50, Y2: 30}}

	primary := new(mocks.MockTableDetector)
	primary.On("Detect", mock.Anything, mock.Anything).Return(cells, nil)
	secondary := new(mocks.MockTableDetector)

	d := tabledetect.NewFallbackDetector(
		[]port.TableDetector{primary, secondary},
		[]string{"layout-model", "morphological"},
	)

	got, err := d.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, cells, got)
	secondary.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
}

func TestFallbackDetector_FallsThroughOnFailure(t *testing.T) {
	img := imaging.New(100, 60, color.White)
	cells := []domain.TableCell{{RowIdx: 0, ColIdx: 0, X2: 50, Y2: 30}}

	primary := new(mocks.MockTableDetector)
	primary.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("layout model unreachable"))
	secondary := new(mocks.MockTableDetector)
	secondary.On("Detect", mock.Anything, mock.Anything).Return(cells, nil)

	d := tabledetect.NewFallbackDetector(
		[]port.TableDetector{primary, secondary},
		[]string{"layout-model", "morphological"},
	)

	got, err := d.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, cells, got)
}

func TestFallbackDetector_EmptyResultFallsThrough(t *testing.T) {
	img := imaging.New(100, 60, color.White)
	cells := []domain.TableCell{{RowIdx: 0, ColIdx: 0, X2: 50, Y2: 30}}

	primary := new(mocks.MockTableDetector)
	primary.On("Detect", mock.Anything, mock.Anything).Return([]domain.TableCell{}, nil)
	secondary := new(mocks.MockTableDetector)
	secondary.On("Detect", mock.Anything, mock.Anything).Return(cells, nil)

	d := tabledetect.NewFallbackDetector(
		[]port.TableDetector{primary, secondary},
		[]string{"layout-model", "morphological"},
	)

	got, err := d.Detect(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, cells, got)
}

func TestFallbackDetector_AllStrategiesExhausted(t *testing.T) {
	img := imaging.New(100, 60, color.White)

	primary := new(mocks.MockTableDetector)
	primary.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))
	secondary := new(mocks.MockTableDetector)
	secondary.On("Detect", mock.Anything, mock.Anything).Return(nil, domain.ErrNoTableDetected)

	d := tabledetect.NewFallbackDetector(
		[]port.TableDetector{primary, secondary},
		[]string{"layout-model", "morphological"},
	)

	got, err := d.Detect(context.Background(), img)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNoTableDetected)
}
