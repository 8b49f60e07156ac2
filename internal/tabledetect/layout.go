package tabledetect

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/net/html"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

const layoutCropQuality = 90

// LayoutStrategy detects cells by delegating to the external layout model
// and interpreting its structural table markup.
type LayoutStrategy struct {
	analyzer port.LayoutAnalyzer
}

// NewLayoutStrategy creates a LayoutStrategy on top of the given analyzer.
func NewLayoutStrategy(analyzer port.LayoutAnalyzer) *LayoutStrategy {
	return &LayoutStrategy{analyzer: analyzer}
}

func (s *LayoutStrategy) Detect(ctx context.Context, img image.Image) ([]domain.TableCell, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(layoutCropQuality)); err != nil {
		return nil, fmt.Errorf("layout strategy: encoding image: %w", err)
	}

	regions, err := s.analyzer.Analyze(ctx, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("layout strategy: %w", err)
	}

	for _, region := range regions {
		if region.Type != "table" {
			continue
		}
		cells, err := parseTableMarkup(region.TableMarkup, region.BBox)
		if err != nil {
			return nil, fmt.Errorf("layout strategy: %w", err)
		}
		if len(cells) == 0 {
			break
		}
		return cells, nil
	}
	return nil, domain.ErrNoTableDetected
}

// parseTableMarkup walks the model's nested row/cell markup and assigns
// row/col indices. The model reports only a table-level bounding box, so
// each cell's bbox is approximated by dividing the table box evenly: height
// across the row count, width across each row's own column count. Column
// widths can therefore legitimately differ row to row. This arithmetic is a
// preserved approximation that crop boundaries downstream depend on.
func parseTableMarkup(markup string, tableBBox [4]int) ([]domain.TableCell, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing table markup: %w", err)
	}

	rows := collectRows(doc)

	tx1, ty1, tx2, ty2 := tableBBox[0], tableBBox[1], tableBBox[2], tableBBox[3]
	rowH := float64(ty2-ty1) / float64(max(len(rows), 1))

	var cells []domain.TableCell
	for rowIdx, row := range rows {
		colW := float64(tx2-tx1) / float64(max(len(row), 1))
		for colIdx, cellNode := range row {
			x1 := tx1 + int(float64(colIdx)*colW)
			y1 := ty1 + int(float64(rowIdx)*rowH)
			cells = append(cells, domain.TableCell{
				RowIdx:   rowIdx,
				ColIdx:   colIdx,
				X1:       x1,
				Y1:       y1,
				X2:       x1 + int(colW),
				Y2:       y1 + int(rowH),
				TextHint: strings.TrimSpace(nodeText(cellNode)),
			})
		}
	}
	return cells, nil
}

// collectRows finds every tr element in document order and returns its
// td/th children.
func collectRows(n *html.Node) [][]*html.Node {
	var rows [][]*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, c)
				}
			}
			rows = append(rows, row)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return rows
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
