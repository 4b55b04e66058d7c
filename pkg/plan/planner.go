package plan

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/portplan/pkg/graph"
	"github.com/mkessler/portplan/pkg/scan"
)

// DefaultParallelism is the assumed number of conversion tracks running
// side by side. It is carried into the plan for downstream wall-clock
// projections; the engine itself never simulates concurrent work.
const DefaultParallelism = 3

// Options configures a planning run.
type Options struct {
	// MaxUnitSize caps conversion unit sizes. Defaults to 10.
	MaxUnitSize int
	// Parallelism is echoed into the plan for downstream consumers.
	// Defaults to 3.
	Parallelism int
	// Logger receives progress and anomaly warnings. Defaults to the
	// package-level default logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.MaxUnitSize <= 0 {
		o.MaxUnitSize = DefaultMaxUnitSize
	}
	if o.Parallelism <= 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Stats contains planning run statistics. They describe the run, not the
// plan, and are not serialized with it.
type Stats struct {
	ModuleCount int
	EdgeCount   int
	UnitCount   int
	WaveCount   int
	Elapsed     time.Duration
}

// Result bundles the plan with the non-fatal conditions observed while
// building it.
type Result struct {
	Plan *Plan
	// Splits lists every oversized cyclic cluster that had to be split
	// across unit boundaries. Never silent: the planner logs each one
	// and callers are expected to surface them as well.
	Splits []ClusterSplit
	// Forced is true when a scheduling anomaly produced a forced wave.
	Forced bool
	Stats  Stats
}

// Planner runs the full scan -> plan pipeline.
type Planner struct {
	opts Options
}

// NewPlanner creates a planner, applying defaults to unset options.
func NewPlanner(opts Options) *Planner {
	opts.setDefaults()
	return &Planner{opts: opts}
}

// Build computes a conversion plan from a raw scan.
//
// The only fatal condition is a malformed module record. An empty scan
// yields a valid empty plan. Unresolved edges become external-dependency
// counts, oversized cluster splits are logged and returned in the
// Result, and a surviving cycle lands in a forced final wave.
func (p *Planner) Build(s *scan.Scan) (*Result, error) {
	start := time.Now()
	logger := p.opts.Logger

	if err := scan.Validate(s); err != nil {
		return nil, err
	}

	ids := make([]string, len(s.Modules))
	for i, m := range s.Modules {
		ids[i] = m.ModuleID
	}
	edges := make([]graph.Edge, len(s.Edges))
	for i, e := range s.Edges {
		edges[i] = graph.Edge{From: e.Source, To: e.Target}
	}
	store := graph.Build(ids, edges)
	logger.Debug("import graph built",
		"modules", store.ModuleCount(), "edges", store.EdgeCount(),
		"external", store.ExternalTotal())

	units, splits := FormUnits(store, p.opts.MaxUnitSize)
	for _, split := range splits {
		logger.Warn("oversized cyclic cluster split across units; atomic conversion not guaranteed",
			"cluster_size", len(split.Members), "parts", split.Parts)
		for _, e := range split.CrossingEdges {
			logger.Warn("cyclic edge crosses unit boundary", "from", e.From, "to", e.To)
		}
	}

	ug := BuildUnitGraph(units, store)
	waves := ScheduleWaves(ug)
	forced := false
	for _, w := range waves {
		if w.Forced {
			forced = true
			logger.Warn("dependency cycle survived unit formation; scheduling remaining units in forced wave",
				"wave", w.Number, "units", len(w.Units))
		}
	}

	critical := FindCriticalPath(ug, waves)

	modules := scan.Index(s)
	metrics := make(map[string]UnitMetrics, len(units))
	totalHours := 0
	for _, u := range units {
		m := ScoreUnit(u, ug, modules)
		metrics[u.Name] = m
		totalHours += m.EstimatedEffortHours
	}

	result := &Result{
		Plan:   assemble(store, ug, waves, critical, metrics, totalHours, p.opts.Parallelism),
		Splits: splits,
		Forced: forced,
		Stats: Stats{
			ModuleCount: store.ModuleCount(),
			EdgeCount:   store.EdgeCount(),
			UnitCount:   len(units),
			WaveCount:   len(waves),
			Elapsed:     time.Since(start),
		},
	}
	logger.Debug("plan assembled",
		"units", result.Stats.UnitCount, "waves", result.Stats.WaveCount,
		"elapsed", result.Stats.Elapsed.Round(time.Millisecond))
	return result, nil
}

// assemble composes the final serializable plan object.
func assemble(store *graph.Store, ug *UnitGraph, waves []Wave,
	critical CriticalPath, metrics map[string]UnitMetrics, totalHours, parallelism int) *Plan {

	waveOf := WaveOf(waves)

	waveRecords := make([]WaveRecord, 0, len(waves))
	for _, w := range waves {
		units := make([]UnitRecord, 0, len(w.Units))
		for _, name := range w.Units {
			u, _ := ug.Unit(name)
			units = append(units, unitRecord(u, ug, metrics[name]))
		}
		waveRecords = append(waveRecords, WaveRecord{Wave: w.Number, Units: units, Forced: w.Forced})
	}

	gateways := make([]GatewayRecord, 0)
	for _, g := range GatewayUnits(ug, metrics) {
		gateways = append(gateways, GatewayRecord{
			Name:      g.Name,
			FanIn:     g.FanIn,
			Wave:      waveOf[g.Name],
			RiskScore: g.RiskScore,
		})
	}

	return &Plan{
		TotalModules:         store.ModuleCount(),
		TotalUnits:           len(ug.Units()),
		TotalWaves:           len(waves),
		EstimatedEffortDays:  int(math.Round(float64(totalHours) / hoursPerDay)),
		Parallelism:          parallelism,
		ExternalDependencies: store.ExternalTotal(),
		Waves:                waveRecords,
		CriticalPath: CriticalPathRecord{
			Length:        critical.Length,
			Units:         critical.Units,
			EstimatedDays: critical.EstimatedDays(),
		},
		GatewayUnits: gateways,
	}
}

func unitRecord(u Unit, ug *UnitGraph, m UnitMetrics) UnitRecord {
	deps := ug.Dependencies(u.Name)
	if deps == nil {
		deps = []string{}
	}
	factors := m.RiskFactors
	if factors == nil {
		factors = []string{}
	}
	return UnitRecord{
		Name:                 u.Name,
		Modules:              u.Members,
		IsCluster:            u.IsCluster,
		Dependencies:         deps,
		RiskScore:            m.RiskScore,
		RiskFactors:          factors,
		Py2IsmCount:          m.Py2IsmCount,
		LinesOfCode:          m.LinesOfCode,
		FanIn:                m.FanIn,
		EstimatedEffortHours: m.EstimatedEffortHours,
		ModuleCount:          len(u.Members),
	}
}
