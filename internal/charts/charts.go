// Package charts renders an aggregator's counter tables to HTML using
// go-echarts. Wiring stays an external, ambient concern: the core
// aggregation dispatcher never imports this package.
package charts

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rbscholtus/gweblog/internal/counters"
	gwhttp "github.com/rbscholtus/gweblog/internal/http"
)

// Render builds a page of charts from agg's counter tables and writes
// it as a standalone HTML document.
func Render(agg *counters.Aggregator, w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(
		StatusCodePie(agg),
		RequestKindPie(agg),
		TopHostsBar(agg),
		DailyUniqueVisitorsBar(agg),
	)
	if agg.Countries.Len() > 0 {
		page.AddCharts(CountryMap(agg))
	}
	return page.Render(w)
}

func commonAxisOpts() (opts.XAxis, opts.YAxis) {
	return opts.XAxis{SplitLine: &opts.SplitLine{Show: opts.Bool(true)}},
		opts.YAxis{SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}
}

// StatusCodePie renders hits by HTTP status code.
func StatusCodePie(agg *counters.Aggregator) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Hits by Response Code"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	var items []opts.PieData
	agg.StatusCode.ForEach(func(status string, hits uint64) {
		label := status
		if code, err := strconv.ParseUint(status, 10, 16); err == nil {
			if name, ok := gwhttp.HttpStatusCodes[uint16(code)]; ok {
				label = fmt.Sprintf("%s - %s", status, name)
			}
		}
		items = append(items, opts.PieData{Name: label, Value: hits})
	})

	pie.AddSeries("Status", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b} ({d}%)"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "75%"}, RoseType: "radius"}),
	)
	return pie
}

// RequestKindPie splits hits across the three request tables: dynamic
// requests, static requests, and not-found requests.
func RequestKindPie(agg *counters.Aggregator) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Hits by Request Kind"}),
	)

	items := []opts.PieData{
		{Name: "Requests", Value: sumHits(agg.Requests)},
		{Name: "Static", Value: sumHits(agg.RequestsStatic)},
		{Name: "Not Found", Value: sumHits(agg.NotFoundReqs)},
	}
	pie.AddSeries("Kind", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b} ({d}%)"}),
	)
	return pie
}

func sumHits(t *counters.NamedHitTable) uint64 {
	var total uint64
	t.ForEach(func(e counters.Entry) { total += e.Hits })
	return total
}

// TopHostsBar renders a bar chart of hosts and their byte totals.
func TopHostsBar(agg *counters.Aggregator) *charts.Bar {
	xOpts, yOpts := commonAxisOpts()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Bytes by Host"}),
		charts.WithXAxisOpts(xOpts),
		charts.WithYAxisOpts(yOpts),
	)

	var hosts []string
	var bytes []opts.BarData
	agg.HostBW.ForEach(func(host string, total uint64) {
		hosts = append(hosts, host)
		bytes = append(bytes, opts.BarData{Value: total})
	})

	bar.SetXAxis(hosts).AddSeries("Bytes", bytes)
	bar.SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{BorderWidth: 1, BorderColor: "black"}))
	return bar
}

// DailyUniqueVisitorsBar renders unique visitors per date_key.
func DailyUniqueVisitorsBar(agg *counters.Aggregator) *charts.Bar {
	xOpts, yOpts := commonAxisOpts()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Unique Visitors by Date"}),
		charts.WithColorsOpts(opts.Colors{"#0040ff"}),
		charts.WithXAxisOpts(xOpts),
		charts.WithYAxisOpts(yOpts),
	)

	var dates []string
	var visits []opts.BarData
	agg.UniqueVisByDate.ForEach(func(dateKey string, hits uint64) {
		dates = append(dates, dateKey)
		visits = append(visits, opts.BarData{Value: hits})
	})

	bar.SetXAxis(dates).AddSeries("Visitors", visits)
	return bar
}

// CountryMap renders unique-visitor hits per GeoIP country.
func CountryMap(agg *counters.Aggregator) *charts.Map {
	var items []opts.MapData
	var maxHits uint64
	agg.Countries.ForEach(func(e counters.Entry) {
		items = append(items, opts.MapData{Name: e.Key, Value: e.Hits})
		if e.Hits > maxHits {
			maxHits = e.Hits
		}
	})

	mc := charts.NewMap()
	mc.RegisterMapType("world")
	mc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Unique Visitors by Country"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxHits),
		}),
	)
	mc.AddSeries("Visitors", items)
	return mc
}
