package spending

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/AnnaVal-na/finsight/internal/models"
)

// RenderSpendingChart renders a PNG bar chart of monthly spending totals.
// Bars show absolute amounts since statement outflows are negative.
// Returns raw PNG bytes.
func RenderSpendingChart(report *models.SpendingReport) ([]byte, error) {
	if len(report.Rows) == 0 {
		return nil, fmt.Errorf("need at least 1 month of data")
	}

	bars := make([]chart.Value, len(report.Rows))
	for i, row := range report.Rows {
		bars[i] = chart.Value{
			Label: row.Month,
			Value: math.Abs(row.Total),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"), // blue-600
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		}
	}

	graph := chart.BarChart{
		Title:    report.Category,
		Width:    700,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
