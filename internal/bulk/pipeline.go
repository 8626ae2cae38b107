package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"distance-calculator/internal/batch"
	"distance-calculator/internal/csvio"
	"distance-calculator/internal/domain"
	"distance-calculator/internal/services"
)

var (
	// ErrCancelled reports a user-initiated stop. Partial results are
	// discarded; the caller receives no rows.
	ErrCancelled = errors.New("bulk processing cancelled")

	// ErrNoValidRows reports that parsing produced rows but none carried a
	// usable location field.
	ErrNoValidRows = errors.New("no valid rows in input")
)

// Progress updates in the sequential per-row phases are acted on only every
// few completions to avoid excessive downstream updates.
const progressEvery = 3

// Pipeline orchestrates one bulk run: classification, deduplicated batched
// geocoding, distance computation, and sequential road routing.
//
// A Pipeline is reusable across runs; its caches (inside Geocoder and Router)
// carry over, so a superseded run's contributions remain valid.
type Pipeline struct {
	Geocoder *services.Geocoder
	Router   *services.Router

	// Geocode scheduling knobs.
	BatchSize  int
	BatchDelay time.Duration
	// Fixed delay between sequential road-routing calls.
	RouteDelay time.Duration

	// OnProgress observes phase and counter updates. Optional.
	OnProgress ProgressFunc
}

// ProcessFile parses CSV from r and processes the rows.
func (p *Pipeline) ProcessFile(ctx context.Context, r io.Reader, mode domain.TravelMode) ([]domain.ResolvedRoute, error) {
	tr := newTracker(p.OnProgress)
	tr.setPhase(PhaseParsing, 0)

	rows, err := csvio.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("bulk: %w", err)
	}

	return p.process(ctx, tr, rows, mode)
}

// Process runs the pipeline over already-parsed rows.
func (p *Pipeline) Process(ctx context.Context, rows []csvio.Row, mode domain.TravelMode) ([]domain.ResolvedRoute, error) {
	return p.process(ctx, newTracker(p.OnProgress), rows, mode)
}

func (p *Pipeline) process(ctx context.Context, tr *tracker, rows []csvio.Row, mode domain.TravelMode) (results []domain.ResolvedRoute, err error) {
	// A malformed row must fail the run cleanly, not crash the process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bulk processing panic: %v", r)
			results = nil
			err = fmt.Errorf("bulk: processing failed")
		}
	}()

	if !mode.Valid() {
		return nil, fmt.Errorf("bulk: unknown travel mode %q", mode)
	}

	cls := Classify(rows)
	if len(cls.Rows) == 0 {
		return nil, ErrNoValidRows
	}

	results = make([]domain.ResolvedRoute, len(cls.Rows))
	for i, row := range cls.Rows {
		results[i] = domain.ResolvedRoute{Row: row}
	}

	// Fast path: nothing to geocode and no routing needed.
	if cls.AllReady() && mode == domain.ModeAir {
		tr.setPhase(PhaseCalculating, len(cls.Ready))
		for _, idx := range cls.Ready {
			results[idx].FromCoords = cls.Rows[idx].From.Coords
			results[idx].ToCoords = cls.Rows[idx].To.Coords
			fillAir(&results[idx])
		}
		tr.advance(len(cls.Ready))
		tr.setPhase(PhaseDone, len(cls.Ready))
		return results, nil
	}

	// Coordinate-only rows are instant in air mode; in road mode they wait
	// for the dedicated routing-coords phase.
	if len(cls.Ready) > 0 {
		tr.setPhase(PhaseCalculating, len(cls.Ready))
		for _, idx := range cls.Ready {
			results[idx].FromCoords = cls.Rows[idx].From.Coords
			results[idx].ToCoords = cls.Rows[idx].To.Coords
			if mode == domain.ModeAir {
				fillAir(&results[idx])
			}
		}
		tr.advance(len(cls.Ready))
	}

	table, cancelled := p.geocodeNames(ctx, tr, cls.Names)
	if cancelled {
		tr.setPhase(PhaseCancelled, 0)
		return nil, ErrCancelled
	}

	if len(cls.NeedsGeocode) > 0 {
		phase := PhaseCalculating
		if mode == domain.ModeRoad {
			phase = PhaseRouting
		}
		tr.setPhase(phase, len(cls.NeedsGeocode))

		if p.resolveRows(ctx, tr, results, cls.NeedsGeocode, table, mode) {
			tr.setPhase(PhaseCancelled, 0)
			return nil, ErrCancelled
		}
	}

	if mode == domain.ModeRoad && len(cls.Ready) > 0 {
		tr.setPhase(PhaseRoutingCoords, len(cls.Ready))
		if p.routeRows(ctx, tr, results, cls.Ready) {
			tr.setPhase(PhaseCancelled, 0)
			return nil, ErrCancelled
		}
	}

	tr.setPhase(PhaseDone, len(cls.Rows))
	return results, nil
}

// geocodeNames resolves the deduplicated name set through the batch scheduler
// and returns the name -> coordinates table. Names that failed resolution are
// simply missing from the table.
func (p *Pipeline) geocodeNames(ctx context.Context, tr *tracker, names []string) (map[string]domain.Coordinates, bool) {
	if len(names) == 0 {
		return map[string]domain.Coordinates{}, ctx.Err() != nil
	}

	tr.setPhase(PhaseGeocoding, len(names))

	tasks := make([]batch.Task[domain.Coordinates], len(names))
	for i, name := range names {
		name := name
		tasks[i] = func(ctx context.Context) (domain.Coordinates, error) {
			coords, ok := p.Geocoder.Geocode(ctx, name)
			if !ok {
				return domain.Coordinates{}, fmt.Errorf("geocode %q: no result", name)
			}
			return coords, nil
		}
	}

	settled := batch.Run(ctx, tasks, batch.Options{
		BatchSize:  p.BatchSize,
		Delay:      p.BatchDelay,
		OnProgress: tr.advance,
	})

	if len(settled) < len(tasks) || ctx.Err() != nil {
		return nil, true
	}

	table := make(map[string]domain.Coordinates, len(settled))
	for i, r := range settled {
		if r.OK {
			table[names[i]] = r.Value
		}
	}
	return table, false
}

// resolveRows fills results for rows needing geocoding, strictly sequentially.
// Returns true when cancelled.
func (p *Pipeline) resolveRows(ctx context.Context, tr *tracker, results []domain.ResolvedRoute, idxs []int, table map[string]domain.Coordinates, mode domain.TravelMode) bool {
	for n, idx := range idxs {
		if ctx.Err() != nil {
			return true
		}

		res := &results[idx]

		from, fromOK := resolveEndpoint(res.Row.From, table)
		to, toOK := resolveEndpoint(res.Row.To, table)

		// Each endpoint keeps the coordinates it resolved to even when the
		// sibling fails; the output must never show a zero coordinate for a
		// location the input supplied.
		if fromOK {
			res.FromCoords = from
		}
		if toOK {
			res.ToCoords = to
		}

		if !fromOK || !toOK {
			res.Err = domain.ErrAnnotationGeocode
		} else {
			if mode == domain.ModeAir {
				fillAir(res)
			} else {
				if n > 0 && p.RouteDelay > 0 {
					time.Sleep(p.RouteDelay)
				}
				p.fillRoad(ctx, res)
			}
		}

		if (n+1)%progressEvery == 0 || n == len(idxs)-1 {
			tr.advance(n + 1)
		}
	}
	return false
}

// routeRows fetches road distances for coordinate-only rows, sequentially.
// Returns true when cancelled.
func (p *Pipeline) routeRows(ctx context.Context, tr *tracker, results []domain.ResolvedRoute, idxs []int) bool {
	for n, idx := range idxs {
		if ctx.Err() != nil {
			return true
		}

		if n > 0 && p.RouteDelay > 0 {
			time.Sleep(p.RouteDelay)
		}
		p.fillRoad(ctx, &results[idx])

		if (n+1)%progressEvery == 0 || n == len(idxs)-1 {
			tr.advance(n + 1)
		}
	}
	return false
}

func (p *Pipeline) fillRoad(ctx context.Context, res *domain.ResolvedRoute) {
	r, ok := p.Router.Route(ctx, res.FromCoords, res.ToCoords)
	if !ok {
		if ctx.Err() == nil {
			res.Err = domain.ErrAnnotationRoute
		}
		return
	}
	res.Resolved = true
	res.DistanceKm = r.DistanceKm
	res.DurationMin = r.DurationMin
}

// fillAir computes the great-circle distance from the already-resolved
// endpoint coordinates.
func fillAir(res *domain.ResolvedRoute) {
	res.Resolved = true
	res.DistanceKm = domain.GreatCircleKm(res.FromCoords, res.ToCoords)
}

func resolveEndpoint(ep domain.LocationInput, table map[string]domain.Coordinates) (domain.Coordinates, bool) {
	if ep.HasCoords {
		return ep.Coords, true
	}
	c, ok := table[ep.Name]
	return c, ok
}
