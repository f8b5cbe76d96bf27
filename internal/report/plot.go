package report

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/xichen1997/stronger-llama/internal/eval"
	"github.com/xichen1997/stronger-llama/internal/runner"
)

// ErrNoRecords is returned when there is nothing to plot.
var ErrNoRecords = errors.New("no records to plot")

// Chart dimensions for the two side-by-side panels.
const (
	plotWidth  = 15 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// PlotResults writes a PNG with a response-time box plot and a grouped bar chart
// of mean quality metrics, both keyed by strategy.
func PlotResults(records []runner.Record, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	summaries := Summarize(records)

	timePlot, err := responseTimePlot(summaries)
	if err != nil {
		return err
	}
	metricPlot, err := metricsPlot(summaries)
	if err != nil {
		return err
	}

	img := vgimg.New(plotWidth, plotHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 5,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{{timePlot, metricPlot}}, tiles, dc)
	timePlot.Draw(canvases[0][0])
	metricPlot.Draw(canvases[0][1])

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write plot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close plot: %w", err)
	}
	return nil
}

func strategyNames(summaries []StrategySummary) []string {
	names := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		names = append(names, summary.Strategy)
	}
	return names
}

func responseTimePlot(summaries []StrategySummary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Response Time by Strategy"
	p.Y.Label.Text = "Response time (s)"
	p.Y.Min = 0
	for i, summary := range summaries {
		// Strategies whose cases all failed keep their axis slot without a box.
		if len(summary.ResponseTimes) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(summary.ResponseTimes))
		if err != nil {
			return nil, fmt.Errorf("box plot %s: %w", summary.Strategy, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
	}
	p.NominalX(strategyNames(summaries)...)
	return p, nil
}

func metricsPlot(summaries []StrategySummary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Quality Metrics by Strategy"
	p.Y.Label.Text = "Mean score"
	// Scores live in [0, 1]; the axis still grows if a scorer exceeds it.
	p.Y.Min = 0
	p.Y.Max = 1
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	barWidth := vg.Points(18)
	offset := -barWidth * vg.Length(len(eval.MetricNames)-1) / 2
	for m, name := range eval.MetricNames {
		values := make(plotter.Values, len(summaries))
		for i, summary := range summaries {
			values[i] = summary.MeanMetrics.Named()[m].Value
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar chart %s: %w", name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(m)
		bars.Offset = offset + barWidth*vg.Length(m)
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.NominalX(strategyNames(summaries)...)
	return p, nil
}
