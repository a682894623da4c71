package sink

import (
	"fmt"
	"io"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/log"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type classSeries struct {
	insts      []string
	latency    map[string]float64
	throughput map[string]float64
}

// groupByClass keeps instructions in first-seen order. Classes known to bench
// come first in their table order; unknown ones follow as seen.
func groupByClass(results []bench.TimingSample) ([]string, map[string]*classSeries) {
	byClass := make(map[string]*classSeries)
	var seen []string
	for _, s := range results {
		cs, ok := byClass[s.Class]
		if !ok {
			cs = &classSeries{latency: map[string]float64{}, throughput: map[string]float64{}}
			byClass[s.Class] = cs
			seen = append(seen, s.Class)
		}
		_, inL := cs.latency[s.Inst]
		_, inT := cs.throughput[s.Inst]
		if !inL && !inT {
			cs.insts = append(cs.insts, s.Inst)
		}
		if s.Mode == bench.Latency.Label() {
			cs.latency[s.Inst] = s.CPI
		} else {
			cs.throughput[s.Inst] = s.CPI
		}
	}

	order := make([]string, 0, len(seen))
	done := make(map[string]bool)
	for _, id := range bench.Classes {
		if name := id.String(); byClass[name] != nil {
			order = append(order, name)
			done[name] = true
		}
	}
	for _, name := range seen {
		if !done[name] {
			order = append(order, name)
		}
	}
	return order, byClass
}

func barData(insts []string, vals map[string]float64) []opts.BarData {
	out := make([]opts.BarData, len(insts))
	for i, inst := range insts {
		v, ok := vals[inst]
		if !ok {
			out[i] = opts.BarData{Name: inst, Value: "-"}
			continue
		}
		out[i] = opts.BarData{Name: inst, Value: v}
	}
	return out
}

func classChart(class string, cs *classSeries) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "1400px",
			Height:  "600px",
			ChartID: "class_" + class,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    class,
			Subtitle: fmt.Sprintf("cycles per instruction, %d instructions", len(cs.insts)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Rotate: 60, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "CPI"}),
	)
	bar.SetXAxis(cs.insts).
		AddSeries(bench.Latency.Label(), barData(cs.insts, cs.latency)).
		AddSeries(bench.Throughput.Label(), barData(cs.insts, cs.throughput))
	return bar
}

// Report renders an HTML page with one CPI bar chart per register class.
func Report(w io.Writer, title string, results []bench.TimingSample) error {
	if len(results) == 0 {
		return fmt.Errorf("sink: no results to report")
	}
	order, byClass := groupByClass(results)
	page := components.NewPage().SetPageTitle(title)
	for _, class := range order {
		page.AddCharts(classChart(class, byClass[class]))
	}
	log.Debug(log.SinkMonitoring, "report", "classes", len(order), "samples", len(results))
	return page.Render(w)
}
