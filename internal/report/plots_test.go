package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/elevation.report/internal/transect"
)

func testSnapshot() *transect.Snapshot {
	records := []transect.Record{
		{Site: "AHA", Year: 2021, DistAlong: 0, Elevation: 10},
		{Site: "AHA", Year: 2021, DistAlong: 1, Elevation: 12},
		{Site: "AHA", Year: 2024, DistAlong: 0, Elevation: 11},
		{Site: "AHA", Year: 2024, DistAlong: 1, Elevation: 11},
		{Site: "LONE/21", Year: 2021, DistAlong: 0, Elevation: 5},
		{Site: "LONE/21", Year: 2021, DistAlong: 2, Elevation: 6},
	}
	return transect.BuildSnapshot(records, 2021, 2024)
}

func TestWriteSitePlots(t *testing.T) {
	outDir := t.TempDir()

	count, err := WriteSitePlots(testSnapshot(), outDir)
	if err != nil {
		t.Fatalf("WriteSitePlots: %v", err)
	}

	// AHA gets profiles+diff+integral; the single-year site only profiles.
	if count != 4 {
		t.Errorf("wrote %d plots, want 4", count)
	}

	want := []string{
		"site_AHA_profiles.png",
		"site_AHA_diff.png",
		"site_AHA_integral.png",
		"site_LONE_21_profiles.png",
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing plot %s: %v", name, err)
		}
	}
}

func TestWriteSitePlotsNilSnapshot(t *testing.T) {
	if _, err := WriteSitePlots(nil, t.TempDir()); err == nil {
		t.Error("expected error for nil snapshot")
	}
}

func TestSanitizeSite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AHA", "AHA"},
		{"LONE/21", "LONE_21"},
		{"a b.c", "a_b_c"},
		{"ok-name_1", "ok-name_1"},
	}
	for _, tt := range tests {
		if got := sanitizeSite(tt.in); got != tt.want {
			t.Errorf("sanitizeSite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeRunDirUnderBase(t *testing.T) {
	dir := MakeRunDir("plots")
	if filepath.Dir(dir) != "plots" {
		t.Errorf("run dir %q not under plots/", dir)
	}
}
