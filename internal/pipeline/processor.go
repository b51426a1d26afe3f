package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/clas12-ai/dctrack/internal/bank"
	"github.com/clas12-ai/dctrack/internal/dc"
	"github.com/clas12-ai/dctrack/internal/monitoring"
	"github.com/clas12-ai/dctrack/internal/timeutil"
)

// ErrNonFiniteWeight is returned when a scorer produces a NaN or infinite
// weight.
var ErrNonFiniteWeight = errors.New("scorer returned a non-finite weight")

// Scorer is an external classifier. Given the concatenated features of a
// sector's tracks (stride values per track) it returns one weight per
// track, which replaces the weights computed by Analyze.
type Scorer interface {
	Score(ctx context.Context, features []float64, stride int) ([]float64, error)
}

// SectorResult is the outcome of one sector of one event.
type SectorResult struct {
	Sector         int
	ClusterCount   int
	BestTrack      int // dc.NoTrack when no track is valid
	BestTrackCount int
	Tracks         []dc.TrackResult
}

// EventResult is the outcome of one event over all processed sectors.
type EventResult struct {
	EventID int64
	Sectors []SectorResult
}

// TrackResults flattens the per-sector track results.
func (r *EventResult) TrackResults() []dc.TrackResult {
	var out []dc.TrackResult
	for _, s := range r.Sectors {
		out = append(out, s.Tracks...)
	}
	return out
}

// Option configures a Processor.
type Option func(*Processor)

// WithScorer installs an external scorer.
func WithScorer(s Scorer) Option {
	return func(p *Processor) { p.scorer = s }
}

// WithSectors restricts processing to the given sector numbers.
func WithSectors(sectors ...int) Option {
	return func(p *Processor) { p.sectorNums = append([]int(nil), sectors...) }
}

// WithMetrics records processing counters into m.
func WithMetrics(m *Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithClock sets the clock used for sector timings.
func WithClock(c timeutil.Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// Processor runs the track builder over events. It owns one dc.Sector per
// physical sector; an event's sectors run concurrently and every sector is
// reset when the event ends, whether or not it succeeded. ProcessEvent calls
// are serialized.
type Processor struct {
	mu         sync.Mutex
	cfg        dc.SectorConfig
	sectorNums []int
	sectors    map[int]*dc.Sector
	scorer     Scorer
	metrics    *Metrics
	clock      timeutil.Clock
}

// NewProcessor creates a processor for all six sectors unless WithSectors
// says otherwise.
func NewProcessor(cfg dc.SectorConfig, opts ...Option) *Processor {
	p := &Processor{
		cfg:        cfg,
		sectorNums: []int{1, 2, 3, 4, 5, 6},
		clock:      timeutil.RealClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = NewMetrics(nil)
	}
	p.sectors = make(map[int]*dc.Sector, len(p.sectorNums))
	for _, n := range p.sectorNums {
		p.sectors[n] = dc.NewSector(cfg)
	}
	return p
}

// Sectors returns the sector numbers the processor handles.
func (p *Processor) Sectors() []int {
	return append([]int(nil), p.sectorNums...)
}

// ProcessEvent builds, scores and summarizes the tracks of every sector of
// one event.
func (p *Processor) ProcessEvent(ctx context.Context, ev *bank.Event) (*EventResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	hits := ev.HitsBank()
	tracks := ev.TracksBank()
	results := make([]SectorResult, len(p.sectorNums))

	g, gctx := errgroup.WithContext(ctx)
	for i, num := range p.sectorNums {
		i, num := i, num
		s := p.sectors[num]
		g.Go(func() error {
			defer s.Reset()
			r, err := p.processSector(gctx, s, num, ev.ID, hits, tracks)
			if err != nil {
				return fmt.Errorf("event %d sector %d: %w", ev.ID, num, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.metrics.EventErrors.Inc()
		return nil, err
	}

	p.metrics.EventsTotal.Inc()
	return &EventResult{EventID: ev.ID, Sectors: results}, nil
}

func (p *Processor) processSector(ctx context.Context, s *dc.Sector, num int, eventID int64, hits, tracks bank.Bank) (SectorResult, error) {
	start := p.clock.Now()
	defer func() { p.metrics.SectorDuration.Observe(p.clock.Since(start).Seconds()) }()

	if err := ctx.Err(); err != nil {
		return SectorResult{}, err
	}
	if err := s.Read(hits, num); err != nil {
		return SectorResult{}, err
	}
	if err := s.ReadTrackInfo(tracks); err != nil {
		return SectorResult{}, err
	}
	s.MakeTracks()
	s.Analyze()

	if p.scorer != nil && s.TrackCount() > 0 {
		weights, err := p.scorer.Score(ctx, s.Features(), dc.FeatureStride)
		if err != nil {
			return SectorResult{}, fmt.Errorf("scorer: %w", err)
		}
		for i, w := range weights {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return SectorResult{}, fmt.Errorf("track %d weight %v: %w", i, w, ErrNonFiniteWeight)
			}
		}
		if err := s.SetWeights(weights); err != nil {
			return SectorResult{}, fmt.Errorf("scorer returned %d weights for %d tracks: %w", len(weights), s.TrackCount(), err)
		}
	}

	best, ok := s.BestTrack()
	label := strconv.Itoa(num)
	p.metrics.ClustersTotal.WithLabelValues(label).Add(float64(s.ClusterCount()))
	p.metrics.TracksTotal.WithLabelValues(label).Add(float64(s.TrackCount()))
	if ok {
		p.metrics.BestTracksTotal.WithLabelValues(label).Inc()
	}

	return SectorResult{
		Sector:         num,
		ClusterCount:   s.ClusterCount(),
		BestTrack:      best,
		BestTrackCount: s.BestTrackCount(),
		Tracks:         s.Results(eventID),
	}, nil
}

// EventSource supplies events by id.
type EventSource interface {
	EventIDs() ([]int64, error)
	LoadEvent(id int64) (*bank.Event, error)
}

// ResultSink receives the track results of a processing run.
type ResultSink interface {
	InsertResults(runID string, results []dc.TrackResult) error
}

// Summary counts what a Run processed.
type Summary struct {
	Events     int
	Tracks     int
	BestTracks int
}

// Run processes every event of src in id order and writes the results to
// sink under runID. It stops at the first error.
func (p *Processor) Run(ctx context.Context, runID string, src EventSource, sink ResultSink) (Summary, error) {
	var sum Summary
	ids, err := src.EventIDs()
	if err != nil {
		return sum, fmt.Errorf("failed to list events: %w", err)
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		ev, err := src.LoadEvent(id)
		if err != nil {
			return sum, fmt.Errorf("failed to load event %d: %w", id, err)
		}
		res, err := p.ProcessEvent(ctx, ev)
		if err != nil {
			return sum, err
		}
		trs := res.TrackResults()
		if sink != nil && len(trs) > 0 {
			if err := sink.InsertResults(runID, trs); err != nil {
				return sum, fmt.Errorf("failed to store results of event %d: %w", id, err)
			}
		}
		sum.Events++
		sum.Tracks += len(trs)
		for _, s := range res.Sectors {
			if s.BestTrack != dc.NoTrack {
				sum.BestTracks++
			}
		}
	}

	monitoring.Logf("[Pipeline] run %s: %d events, %d tracks, %d best tracks", runID, sum.Events, sum.Tracks, sum.BestTracks)
	return sum, nil
}
