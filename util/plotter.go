package util

import (
	"fmt"
	"io"

	"dataset-uploader/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotBatchReport renders an HTML page with the outcome counts of a run and
// the distribution of skip/failure reasons.
func PlotBatchReport(report *models.BatchReport, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Dataset upload report",
			Width:     "800px",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Rows by outcome",
			Subtitle: fmt.Sprintf("%d of %d rows dispatched", report.Dispatched, report.Total),
		}),
	)
	bar.SetXAxis([]string{"succeeded", "failed", "skipped"}).
		AddSeries("rows", []opts.BarData{
			{Value: report.Succeeded},
			{Value: report.Failed},
			{Value: report.Skipped},
		}, charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(true),
		}))

	reasons, counts := report.SkipReasonCounts()
	slices := make([]opts.PieData, 0, len(reasons))
	for _, reason := range reasons {
		slices = append(slices, opts.PieData{Name: string(reason), Value: counts[reason]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Reasons"}),
	)
	pie.AddSeries("reasons", slices, charts.WithLabelOpts(opts.Label{
		Show:      opts.Bool(true),
		Formatter: "{b}: {c}",
	}))

	page := components.NewPage()
	page.AddCharts(bar, pie)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
