package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"qmaze/internal/engine"
)

// ConvergenceChart renders an HTML page plotting each cycle's largest update
// and mean table value.
func ConvergenceChart(w io.Writer, reports []engine.CycleReport) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "q-table convergence",
			Subtitle: fmt.Sprintf("%d training cycles", len(reports)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	cycles := make([]string, 0, len(reports))
	deltas := make([]opts.LineData, 0, len(reports))
	means := make([]opts.LineData, 0, len(reports))
	for _, r := range reports {
		cycles = append(cycles, fmt.Sprintf("%d", r.Cycle))
		deltas = append(deltas, opts.LineData{Value: r.MaxDelta})
		means = append(means, opts.LineData{Value: r.MeanValue})
	}
	line.SetXAxis(cycles).
		AddSeries("max delta", deltas).
		AddSeries("mean value", means)

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}
