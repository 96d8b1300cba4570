package api

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/elevation.report/internal/transect"
	"github.com/banshee-data/elevation.report/internal/units"
)

// ChartsMux serves the HTML chart endpoints consumed by the dashboard. The
// charts read the published snapshot only; they never trigger recomputation.
func (s *Server) ChartsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/profiles", s.handleProfilesChart)
	mux.HandleFunc("/diff", s.handleDiffChart)
	mux.HandleFunc("/integral", s.handleIntegralChart)
	mux.HandleFunc("/", s.handleDashboard)
	return mux
}

func (s *Server) renderChart(w http.ResponseWriter, chart interface{ Render(io.Writer) error }) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func distLabels(points []transect.MatchedPoint) []string {
	labels := make([]string, len(points))
	for i, mp := range points {
		labels[i] = fmt.Sprintf("%.3f", mp.DistAlong)
	}
	return labels
}

func seriesLabels(series []transect.SeriesPoint) []string {
	labels := make([]string, len(series))
	for i, p := range series {
		labels[i] = fmt.Sprintf("%.3f", p.DistAlong)
	}
	return labels
}

// handleProfilesChart renders both survey years' elevation profiles for a
// site on a shared distance axis. Stations present in only one year leave a
// gap in the other series.
func (s *Server) handleProfilesChart(w http.ResponseWriter, r *http.Request) {
	result := s.siteResult(w, r)
	if result == nil {
		return
	}
	snap := s.holder.Snapshot()

	early := make([]opts.LineData, len(result.Matched))
	late := make([]opts.LineData, len(result.Matched))
	for i, mp := range result.Matched {
		if mp.ElevEarly != nil {
			early[i] = opts.LineData{Value: units.ConvertElevation(*mp.ElevEarly, s.cfg.Units)}
		} else {
			early[i] = opts.LineData{Value: nil}
		}
		if mp.ElevLate != nil {
			late[i] = opts.LineData{Value: units.ConvertElevation(*mp.ElevLate, s.cfg.Units)}
		} else {
			late[i] = opts.LineData{Value: nil}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Elevation Profiles", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Site %s — Elevation Profiles", result.Site),
			Subtitle: fmt.Sprintf("%d vs %d, %d stations", snap.EarlyYear, snap.LateYear, len(result.Matched)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Elevation (%s)", s.cfg.Units)}),
	)
	line.SetXAxis(distLabels(result.Matched)).
		AddSeries(fmt.Sprintf("%d", snap.EarlyYear), early).
		AddSeries(fmt.Sprintf("%d", snap.LateYear), late)

	s.renderChart(w, line)
}

// handleDiffChart renders elevation change vs distance for a site.
func (s *Server) handleDiffChart(w http.ResponseWriter, r *http.Request) {
	result := s.siteResult(w, r)
	if result == nil {
		return
	}

	data := make([]opts.LineData, len(result.Diff))
	for i, p := range result.Diff {
		data[i] = opts.LineData{Value: units.ConvertElevation(p.Value, s.cfg.Units)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Elevation Change", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Site %s — Elevation Change", result.Site),
			Subtitle: fmt.Sprintf("%d matched stations; positive = gain", len(result.Diff)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Change (%s)", s.cfg.Units)}),
	)
	line.SetXAxis(seriesLabels(result.Diff)).AddSeries("difference", data)

	s.renderChart(w, line)
}

// handleIntegralChart renders the running net area change vs distance.
func (s *Server) handleIntegralChart(w http.ResponseWriter, r *http.Request) {
	result := s.siteResult(w, r)
	if result == nil {
		return
	}

	data := make([]opts.LineData, len(result.Integral))
	for i, p := range result.Integral {
		data[i] = opts.LineData{Value: units.ConvertArea(p.Value, s.cfg.Units)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Net Area Change", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Site %s — Running Net Area Change", result.Site),
			Subtitle: fmt.Sprintf("net %.3f %s² over full transect", units.ConvertArea(result.Summary.NetArea, s.cfg.Units), s.cfg.Units),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Net area (%s²)", s.cfg.Units)}),
	)
	line.SetXAxis(seriesLabels(result.Integral)).AddSeries("integral", data)

	s.renderChart(w, line)
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head><title>Site %[1]s — Survey Comparison</title>
<style>body{margin:0;background:#111;color:#eee;font-family:sans-serif}iframe{border:0;width:100%%;height:640px}h1{padding:8px 16px}</style>
</head>
<body>
<h1>Site %[1]s</h1>
<iframe src="profiles%[2]s"></iframe>
<iframe src="diff%[2]s"></iframe>
<iframe src="integral%[2]s"></iframe>
</body>
</html>`

// handleDashboard renders a simple dashboard with iframes to the three chart
// classes for one site.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	result := s.siteResult(w, r)
	if result == nil {
		return
	}
	safeSite := html.EscapeString(result.Site)
	qs := "?site=" + url.QueryEscape(result.Site)

	doc := fmt.Sprintf(dashboardHTML, safeSite, html.EscapeString(qs))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
