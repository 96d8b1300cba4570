package api

import (
	"sync"

	"github.com/banshee-data/elevation.report/internal/transect"
)

// SnapshotHolder publishes the latest pipeline snapshot to HTTP handlers and
// carries the presentation-only site selection state beside it. Selection
// never triggers recomputation; it only filters what downstream charts show.
type SnapshotHolder struct {
	mu       sync.RWMutex
	snap     *transect.Snapshot
	selected map[string]bool
}

func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{selected: make(map[string]bool)}
}

// Swap replaces the published snapshot wholesale. A rebuild discards all
// derived state, so the selection resets to every site visible.
func (h *SnapshotHolder) Swap(snap *transect.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snap = snap
	h.selected = make(map[string]bool)
	if snap != nil {
		for _, site := range snap.Sites {
			h.selected[site] = true
		}
	}
}

// Snapshot returns the currently published snapshot, or nil before the first
// build completes.
func (h *SnapshotHolder) Snapshot() *transect.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// SetSelected toggles a site's visibility. Returns false for a site the
// current snapshot does not know.
func (h *SnapshotHolder) SetSelected(site string, visible bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.snap == nil || h.snap.Result(site) == nil {
		return false
	}
	h.selected[site] = visible
	return true
}

// SelectedSites returns the visible sites in snapshot order.
func (h *SnapshotHolder) SelectedSites() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.snap == nil {
		return nil
	}
	sites := make([]string, 0, len(h.snap.Sites))
	for _, site := range h.snap.Sites {
		if h.selected[site] {
			sites = append(sites, site)
		}
	}
	return sites
}
