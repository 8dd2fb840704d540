package generator

// ============================================================================
// Interval Sequence Generator
// ============================================================================
//
// Produces a chronological run of attendance intervals for one user between
// Config.Start and Config.End (UTC). Each step:
//
//   1. pick the status (NextStatus)
//   2. sample a duration and compute the tentative end
//   3. clamp the end to Config.End
//   4. if start and (clamped) end fall in different JST months, cut the
//      interval at JST 23:59:59.999 of the start month and mark it split
//   5. assign sub-second parts
//        first record start  random
//        later starts        inherit the previous end (0 after a split)
//        split end           .999
//        other ends          random
//   6. continuation of a split gets AutoNote
//   7. advance: split → JST first instant of the next month, else → end
//
// The loop stops once the clock reaches Config.End. The final record is
// reopened (EndedAt cleared), split or not.
//
// Loop state lives in cursor, passed by value and returned by step.
//
// ============================================================================

import (
	"time"

	"github.com/ChuLiYu/attgen/internal/jstclock"
	"github.com/ChuLiYu/attgen/pkg/types"
)

// Default generation window
var (
	// DefaultStart 2025-08-01 00:00:00 JST
	DefaultStart = time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	// DefaultEnd 2025-11-20 20:51:46 JST
	DefaultEnd = time.Date(2025, 11, 20, 11, 51, 46, 0, time.UTC)
)

// Config generation window and owner
type Config struct {
	UserID types.UserID
	Start  time.Time // UTC, inclusive
	End    time.Time // UTC, exclusive bound of the running clock
}

// DefaultConfig returns the default window for DefaultUserID
func DefaultConfig() Config {
	return Config{
		UserID: types.DefaultUserID,
		Start:  DefaultStart,
		End:    DefaultEnd,
	}
}

// Recorder observes generated intervals. Implemented by metrics.Collector.
type Recorder interface {
	RecordInterval(status types.StatusID, d time.Duration, split bool)
	RecordClamp()
}

type nopRecorder struct{}

func (nopRecorder) RecordInterval(types.StatusID, time.Duration, bool) {}
func (nopRecorder) RecordClamp()                                       {}

// Result output of one generation run
type Result struct {
	Records []types.Record

	// ClosedAt end of the last interval before it was reopened
	ClosedAt time.Time
}

// SplitCount number of records cut at a JST month end
func (r Result) SplitCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Split {
			n++
		}
	}
	return n
}

// Generator builds interval sequences
type Generator struct {
	cfg      Config
	rand     Rand
	recorder Recorder
}

// New creates a generator. Start and End are normalized to UTC whole
// seconds. rec may be nil.
func New(cfg Config, r Rand, rec Recorder) *Generator {
	if rec == nil {
		rec = nopRecorder{}
	}
	cfg.Start = cfg.Start.UTC().Truncate(time.Second)
	cfg.End = cfg.End.UTC().Truncate(time.Second)
	return &Generator{
		cfg:      cfg,
		rand:     r,
		recorder: rec,
	}
}

// Config returns the normalized configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// cursor loop state carried between steps
type cursor struct {
	index         int
	clock         time.Time      // start of the next interval, whole seconds
	prevStatus    types.StatusID // zero before the first record
	prevEndMicros int            // sub-second part the next start inherits
	prevSplit     bool           // previous record was cut at a month end
}

// Generate runs the generator over the configured window
func (g *Generator) Generate() (Result, error) {
	if !g.cfg.Start.Before(g.cfg.End) {
		return Result{}, &InvalidRangeError{Start: g.cfg.Start, End: g.cfg.End}
	}

	var records []types.Record
	c := cursor{clock: g.cfg.Start}
	for c.clock.Before(g.cfg.End) {
		var rec types.Record
		rec, c = g.step(c)
		records = append(records, rec)
	}

	last := &records[len(records)-1]
	result := Result{ClosedAt: last.EndedAt}
	last.EndedAt = time.Time{}
	last.Split = false
	result.Records = records

	return result, nil
}

// step builds the record starting at c.clock and returns the next cursor
func (g *Generator) step(c cursor) (types.Record, cursor) {
	status := NextStatus(g.rand, c.prevStatus, c.prevSplit)
	duration := SampleDuration(g.rand, status)

	start := c.clock
	end := start.Add(duration)
	if end.After(g.cfg.End) {
		end = g.cfg.End
		g.recorder.RecordClamp()
	}

	// month check runs on the clamped end
	split := false
	if !jstclock.SameMonth(start, end) {
		end = jstclock.MonthEndUTC(start)
		split = true
	}

	startedSource := SampleSource(g.rand)
	endedSource := SampleSource(g.rand)

	startMicros := c.prevEndMicros
	if c.index == 0 {
		startMicros = sampleMicros(g.rand)
	}

	rec := types.Record{
		UserID:        g.cfg.UserID,
		Status:        status,
		StartedAt:     withMicros(start, startMicros),
		StartedSource: startedSource,
		EndedSource:   endedSource,
		Split:         split,
	}
	if c.prevSplit {
		rec.Note = types.AutoNote
	}

	next := cursor{
		index:      c.index + 1,
		prevStatus: status,
		prevSplit:  split,
	}

	if split {
		// MonthEndUTC already carries .999
		rec.EndedAt = end
		year, month := jstclock.NextMonth(jstclock.YearMonthOf(end))
		next.clock = jstclock.MonthStartUTC(year, month)
		next.prevEndMicros = 0
	} else {
		endMicros := sampleMicros(g.rand)
		rec.EndedAt = withMicros(end, endMicros)
		next.clock = end
		next.prevEndMicros = endMicros
	}

	g.recorder.RecordInterval(status, rec.EndedAt.Sub(rec.StartedAt), split)
	return rec, next
}

// withMicros replaces the sub-second part of t with micros microseconds
func withMicros(t time.Time, micros int) time.Time {
	return t.Truncate(time.Second).Add(time.Duration(micros) * time.Microsecond)
}

// Generate runs a single generation with cfg and r
func Generate(cfg Config, r Rand) (Result, error) {
	return New(cfg, r, nil).Generate()
}
