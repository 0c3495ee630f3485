package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/terraincognita07/salescharts/internal/models"
)

const DefaultTitle = "CSVデータからの売上グラフ"

type Options struct {
	Title       string
	Width       string
	Height      string
	FillColor   string
	BorderColor string
	AssetsHost  string
}

func DefaultOptions() Options {
	return Options{
		Title:       DefaultTitle,
		Width:       "100%",
		Height:      "480px",
		FillColor:   "rgba(54, 162, 235, 0.5)",
		BorderColor: "rgba(54, 162, 235, 1)",
	}
}

func (options Options) withDefaults() Options {
	defaults := DefaultOptions()
	if options.Title == "" {
		options.Title = defaults.Title
	}
	if options.Width == "" {
		options.Width = defaults.Width
	}
	if options.Height == "" {
		options.Height = defaults.Height
	}
	if options.FillColor == "" {
		options.FillColor = defaults.FillColor
	}
	if options.BorderColor == "" {
		options.BorderColor = defaults.BorderColor
	}
	return options
}

// newBar builds a vertical bar chart bound to surfaceID. The value axis is
// not scaled, so zero stays on it and negative bars still show.
func newBar(surfaceID string, options Options) *charts.Bar {
	initialization := opts.Initialization{
		PageTitle: options.Title,
		Width:     options.Width,
		Height:    options.Height,
		ChartID:   surfaceID,
	}
	if options.AssetsHost != "" {
		initialization.AssetsHost = options.AssetsHost
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initialization),
		charts.WithTitleOpts(opts.Title{
			Title: options.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
		}),
	)
	return bar
}

// bindSeries replaces the chart's labels and its single dataset. The axis
// data is written directly because Render only copies SetXAxis data into
// the axis on the first draw.
func bindSeries(bar *charts.Bar, series models.Series, options Options) {
	bar.MultiSeries = nil
	bar.SetXAxis(series.Labels)
	if len(bar.XAxisList) > 0 {
		bar.XAxisList[0].Data = series.Labels
	}
	bar.AddSeries(series.Label, barData(series.Values),
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:       options.FillColor,
			BorderColor: options.BorderColor,
			BorderWidth: 1,
		}),
	)
}

func barData(values []any) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for index, value := range values {
		data[index] = opts.BarData{Value: value}
	}
	return data
}
