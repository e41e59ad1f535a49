// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

// Package render turns resolved chart props into self-contained ECharts HTML.
// It never decides colors, visibility or data shape on its own: everything
// comes from the props.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tomtom215/pulseboard/internal/analytics"
	"github.com/tomtom215/pulseboard/internal/dashboard"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"
	textColor   = "#333333"
)

// RenderChart writes one chart as a standalone HTML page.
func RenderChart(w io.Writer, p dashboard.Props) error {
	c, err := build(p)
	if err != nil {
		return err
	}
	return c.Render(w)
}

// RenderPage writes every chart on a single HTML page.
func RenderPage(w io.Writer, title string, props []dashboard.Props) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, p := range props {
		c, err := build(p)
		if err != nil {
			return err
		}
		page.AddCharts(c)
	}
	return page.Render(w)
}

// chart is what every go-echarts chart type satisfies.
type chart interface {
	components.Charter
	Render(w io.Writer) error
}

func build(p dashboard.Props) (chart, error) {
	if p.Status != dashboard.StatusReady {
		return emptyChart(p), nil
	}
	switch p.Kind {
	case dashboard.KindBar:
		return barChart(p, false), nil
	case dashboard.KindStackedBar:
		return barChart(p, true), nil
	case dashboard.KindStackedArea:
		return areaChart(p), nil
	case dashboard.KindDoughnut:
		return doughnutChart(p), nil
	case dashboard.KindMultiLine:
		return multiLineChart(p), nil
	default:
		return nil, fmt.Errorf("render: unsupported chart kind %q", p.Kind)
	}
}

func globalOpts(p dashboard.Props, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: p.Title,
			Width:     chartWidth,
			Height:    chartHeight,
			ChartID:   p.ChartID,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      p.Title,
			Subtitle:   subtitle,
			TitleStyle: &opts.TextStyle{Color: textColor},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:     opts.Bool(true),
			Top:      "bottom",
			Selected: legendSelection(p),
		}),
	}
}

// legendSelection mirrors the view-state: hidden series are deselected.
func legendSelection(p dashboard.Props) map[string]bool {
	sel := make(map[string]bool, len(p.Series))
	for _, s := range p.Series {
		sel[s.Label] = s.Visible
	}
	return sel
}

// emptyChart renders the title and a message and nothing else: empty charts
// have no legend and no tooltip.
func emptyChart(p dashboard.Props) *charts.Bar {
	msg := "No data available"
	if p.Error != "" {
		msg = p.Error
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: p.Title,
			Width:     chartWidth,
			Height:    chartHeight,
			ChartID:   p.ChartID,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      p.Title,
			Subtitle:   msg,
			TitleStyle: &opts.TextStyle{Color: textColor},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
	)
	return bar
}

func xLabels(records []analytics.Record, xKey string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text(xKey)
	}
	return out
}

func barChart(p dashboard.Props, stacked bool) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOpts(p, ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)...)
	bar.SetXAxis(xLabels(p.Data, p.XKey))

	for _, s := range p.Series {
		data := make([]opts.BarData, len(p.Data))
		for i, r := range p.Data {
			if v, ok := r.Float(s.Key); ok {
				data[i] = opts.BarData{Value: v}
			} else {
				data[i] = opts.BarData{Value: nil}
			}
		}
		seriesOpts := []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color})}
		if stacked {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		}
		bar.AddSeries(s.Label, data, seriesOpts...)
	}
	return bar
}

func areaChart(p dashboard.Props) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(p, ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)...)
	line.SetXAxis(xLabels(p.Data, p.XKey))

	for _, s := range p.Series {
		line.AddSeries(s.Label, lineData(p.Data, s.Key),
			charts.WithLineChartOpts(opts.LineChart{Stack: "total", Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: s.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return line
}

func doughnutChart(p dashboard.Props) *charts.Pie {
	subtitle := ""
	if p.Total != nil {
		subtitle = fmt.Sprintf("Total: %s", analytics.Number(*p.Total).Text())
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(append(globalOpts(p, subtitle),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
	)...)

	// Data holds the visible slices only, so the renderer's percentages are
	// shares of the visible total.
	data := make([]opts.PieData, 0, len(p.Data))
	for _, r := range p.Data {
		name := r.Text(p.XKey)
		v, _ := r.Float(p.ValueKey)
		data = append(data, opts.PieData{
			Name:      name,
			Value:     v,
			ItemStyle: &opts.ItemStyle{Color: p.ColorFor(name)},
		})
	}

	pie.AddSeries(p.Title, data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
	)
	return pie
}

func multiLineChart(p dashboard.Props) *charts.Line {
	var leftName, rightName string
	for _, s := range p.Series {
		metric := s.Key[len(s.Team)+1:]
		switch {
		case s.Axis == dashboard.AxisLeft && leftName == "":
			leftName = dashboard.Label(metric)
		case s.Axis == dashboard.AxisRight && rightName == "":
			rightName = dashboard.Label(metric)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOpts(p, ""),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: p.XLabel, NameLocation: "center", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: leftName, Position: "left"}),
	)...)
	line.ExtendYAxis(opts.YAxis{Name: rightName, Position: "right"})
	line.SetXAxis(xLabels(p.Data, p.XKey))

	for _, s := range p.Series {
		axis := 0
		lineStyle := opts.LineStyle{Color: s.Color}
		if s.Axis == dashboard.AxisRight {
			axis = 1
			lineStyle.Type = "dashed"
		}
		line.AddSeries(s.Label, lineData(p.Data, s.Key),
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axis}),
			charts.WithLineStyleOpts(lineStyle),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return line
}

// lineData leaves gaps where a record has no value for key.
func lineData(records []analytics.Record, key string) []opts.LineData {
	data := make([]opts.LineData, len(records))
	for i, r := range records {
		if v, ok := r.Float(key); ok {
			data[i] = opts.LineData{Value: v}
		} else {
			data[i] = opts.LineData{Value: nil}
		}
	}
	return data
}
