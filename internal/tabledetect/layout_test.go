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

const sampleMarkup = `<table>
<tr><th>Nama</th><th>Tgl Lahir</th></tr>
<tr><td>Budi</td><td>05/03/2022</td></tr>
<tr><td>Siti</td><td></td></tr>
</table>`

func TestLayoutStrategy_SubdividesTableBBox(t *testing.T) {
	img := imaging.New(400, 300, color.White)

	analyzer := new(mocks.MockLayoutAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return([]port.LayoutRegion{
		{Type: "text", BBox: [4]int{0, 0, 400, 40}},
		{Type: "table", BBox: [4]int{20, 60, 380, 240}, TableMarkup: sampleMarkup},
	}, nil)

	cells, err := tabledetect.NewLayoutStrategy(analyzer).Detect(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, cells, 6)

	// 3 rows over a 180px-tall table: 60px per row; 2 columns over 360px:
	// 180px per column.
	assert.Equal(t, domain.TableCell{
		RowIdx: 0, ColIdx: 0, X1: 20, Y1: 60, X2: 200, Y2: 120, TextHint: "Nama",
	}, cells[0])
	assert.Equal(t, domain.TableCell{
		RowIdx: 0, ColIdx: 1, X1: 200, Y1: 60, X2: 380, Y2: 120, TextHint: "Tgl Lahir",
	}, cells[1])
	assert.Equal(t, domain.TableCell{
		RowIdx: 1, ColIdx: 0, X1: 20, Y1: 120, X2: 200, Y2: 180, TextHint: "Budi",
	}, cells[2])
	assert.Equal(t, domain.TableCell{
		RowIdx: 2, ColIdx: 1, X1: 200, Y1: 180, X2: 380, Y2: 240, TextHint: "",
	}, cells[5])

	analyzer.AssertExpectations(t)
}

func TestLayoutStrategy_UsesFirstTableRegion(t *testing.T) {
	img := imaging.New(100, 100, color.White)

	analyzer := new(mocks.MockLayoutAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return([]port.LayoutRegion{
		{Type: "table", BBox: [4]int{0, 0, 100, 50}, TableMarkup: "<table><tr><td>a</td></tr></table>"},
		{Type: "table", BBox: [4]int{0, 50, 100, 100}, TableMarkup: "<table><tr><td>b</td></tr></table>"},
	}, nil)

	cells, err := tabledetect.NewLayoutStrategy(analyzer).Detect(context.Background(), img)
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, "a", cells[0].TextHint)
}

func TestLayoutStrategy_NoTableRegion(t *testing.T) {
	img := imaging.New(100, 100, color.White)

	analyzer := new(mocks.MockLayoutAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return([]port.LayoutRegion{
		{Type: "text", BBox: [4]int{0, 0, 100, 100}},
	}, nil)

	_, err := tabledetect.NewLayoutStrategy(analyzer).Detect(context.Background(), img)
	assert.ErrorIs(t, err, domain.ErrNoTableDetected)
}

func TestLayoutStrategy_AnalyzerError(t *testing.T) {
	img := imaging.New(100, 100, color.White)

	analyzer := new(mocks.MockLayoutAnalyzer)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("service down"))

	_, err := tabledetect.NewLayoutStrategy(analyzer).Detect(context.Background(), img)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service down")
}
