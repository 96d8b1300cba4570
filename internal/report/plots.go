// Package report writes per-site PNG plots of the three chart classes:
// raw profiles per survey year, elevation change vs distance, and running
// net area change vs distance.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/elevation.report/internal/transect"
)

var (
	earlyColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	lateColor     = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	diffColor     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	integralColor = color.RGBA{R: 148, G: 103, B: 189, A: 255}
)

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeRunDir returns a timestamped output directory under baseDir for one
// report run, e.g. "plots/20260815_141203".
func MakeRunDir(baseDir string) string {
	return filepath.Join(baseDir, FormatTimestamp(time.Now()))
}

// sanitizeSite makes a site identifier safe for use in a filename.
func sanitizeSite(site string) string {
	var b strings.Builder
	for _, r := range site {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// WriteSitePlots renders PNG plots for every site in the snapshot into
// outDir, creating it if needed. Sites missing a year still get a profile
// plot for the year they have; difference and integral plots are skipped for
// sites with no matched stations. Returns the number of PNG files written.
func WriteSitePlots(snap *transect.Snapshot, outDir string) (int, error) {
	if snap == nil {
		return 0, fmt.Errorf("no snapshot to plot")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	count := 0
	for _, site := range snap.Sites {
		result := snap.Result(site)
		name := sanitizeSite(site)

		if len(result.Early) > 0 || len(result.Late) > 0 {
			file := filepath.Join(outDir, fmt.Sprintf("site_%s_profiles.png", name))
			if err := writeProfilesPlot(result, snap.EarlyYear, snap.LateYear, file); err != nil {
				return count, fmt.Errorf("site %s: %w", site, err)
			}
			count++
		}

		if len(result.Diff) > 0 {
			file := filepath.Join(outDir, fmt.Sprintf("site_%s_diff.png", name))
			if err := writeSeriesPlot(result.Diff, diffColor,
				fmt.Sprintf("Site %s - Elevation Change", site), "Change (m)", file); err != nil {
				return count, fmt.Errorf("site %s: %w", site, err)
			}
			count++

			file = filepath.Join(outDir, fmt.Sprintf("site_%s_integral.png", name))
			if err := writeSeriesPlot(result.Integral, integralColor,
				fmt.Sprintf("Site %s - Running Net Area Change", site), "Net area (m²)", file); err != nil {
				return count, fmt.Errorf("site %s: %w", site, err)
			}
			count++
		}
	}
	return count, nil
}

func profileXYs(profile transect.Profile) plotter.XYs {
	pts := make(plotter.XYs, len(profile))
	for i, rec := range profile {
		pts[i] = plotter.XY{X: rec.DistAlong, Y: rec.Elevation}
	}
	return pts
}

func seriesXYs(series []transect.SeriesPoint) plotter.XYs {
	pts := make(plotter.XYs, len(series))
	for i, p := range series {
		pts[i] = plotter.XY{X: p.DistAlong, Y: p.Value}
	}
	return pts
}

func writeProfilesPlot(result *transect.SiteResult, earlyYear, lateYear int, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Site %s - Elevation Profiles", result.Site)
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Elevation (m)"

	if len(result.Early) > 0 {
		line, err := plotter.NewLine(profileXYs(result.Early))
		if err != nil {
			return err
		}
		line.Color = earlyColor
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%d", earlyYear), line)
	}

	if len(result.Late) > 0 {
		line, err := plotter.NewLine(profileXYs(result.Late))
		if err != nil {
			return err
		}
		line.Color = lateColor
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%d", lateYear), line)
	}

	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("save profiles plot: %w", err)
	}
	return nil
}

func writeSeriesPlot(series []transect.SeriesPoint, c color.Color, title, yLabel, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(seriesXYs(series))
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("save series plot: %w", err)
	}
	return nil
}
