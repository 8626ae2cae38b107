package bulk

import "sync"

// Phase identifies where the pipeline currently is.
type Phase string

const (
	PhaseParsing       Phase = "parsing"
	PhaseCalculating   Phase = "calculating"
	PhaseGeocoding     Phase = "geocoding"
	PhaseRouting       Phase = "routing"
	PhaseRoutingCoords Phase = "routing-coords"
	PhaseDone          Phase = "done"
	PhaseCancelled     Phase = "cancelled"
)

// Progress is a snapshot of pipeline progress. Current is monotonically
// non-decreasing within a phase and resets on phase change.
type Progress struct {
	Current    int
	Total      int
	Phase      Phase
	Percentage int
}

// ProgressFunc observes progress snapshots after each update.
type ProgressFunc func(Progress)

// tracker owns the single mutable progress object for one pipeline run.
// Updates can come from scheduler goroutines, so they are serialized here.
type tracker struct {
	mu     sync.Mutex
	cur    Progress
	notify ProgressFunc
}

func newTracker(notify ProgressFunc) *tracker {
	return &tracker{notify: notify}
}

func (t *tracker) setPhase(p Phase, total int) {
	t.mu.Lock()
	t.cur = Progress{Phase: p, Total: total}
	if p == PhaseDone {
		t.cur.Percentage = 100
	}
	snap := t.cur
	t.mu.Unlock()

	if t.notify != nil {
		t.notify(snap)
	}
}

func (t *tracker) advance(current int) {
	t.mu.Lock()
	if current > t.cur.Current {
		t.cur.Current = current
	}
	if t.cur.Total > 0 {
		t.cur.Percentage = t.cur.Current * 100 / t.cur.Total
	}
	snap := t.cur
	t.mu.Unlock()

	if t.notify != nil {
		t.notify(snap)
	}
}
