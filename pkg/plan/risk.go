package plan

import (
	"math"
	"slices"
	"sort"

	"github.com/mkessler/portplan/pkg/scan"
)

// Fan-in thresholds above which a unit's risk escalates regardless of
// member risk: too many dependents make any breakage expensive.
const (
	fanInHighThreshold     = 10
	fanInCriticalThreshold = 20
)

// locPerHour is the base conversion rate of the effort model: one hour of
// migration work per 200 lines of code.
const locPerHour = 200

// deepReviewMultiplier inflates the effort estimate for units touching
// code that needs line-by-line review during conversion.
const deepReviewMultiplier = 1.5

// deepReviewFactors is the fixed set of risk factors that demand deep
// review: binary protocol handling, encoding operations, and
// serialization all change behavior subtly between Python 2 and 3.
var deepReviewFactors = map[string]bool{
	"binary_protocol": true,
	"encoding_ops":    true,
	"serialization":   true,
	"struct_packing":  true,
}

// UnitMetrics aggregates per-unit size, risk, and effort figures.
type UnitMetrics struct {
	LinesOfCode          int
	RiskScore            scan.RiskLevel
	RiskFactors          []string // sorted union over members
	Py2IsmCount          int
	FanIn                int
	EstimatedEffortHours int
}

// ScoreUnit aggregates the members of u into unit-level metrics.
//
// The unit risk is the maximum member risk, escalated to at least high
// when 10 or more units depend on it and to critical at 20. Estimated
// effort is max(1, round(loc/200 * multiplier)) hours, with the 1.5x
// multiplier applied when any member carries a deep-review risk factor.
func ScoreUnit(u Unit, ug *UnitGraph, modules map[string]scan.Module) UnitMetrics {
	m := UnitMetrics{
		RiskScore: scan.RiskLow,
		FanIn:     ug.FanIn(u.Name),
	}

	factorSet := make(map[string]bool)
	deepReview := false
	for _, id := range u.Members {
		mod, ok := modules[id]
		if !ok {
			continue
		}
		m.LinesOfCode += mod.LinesOfCode
		m.Py2IsmCount += mod.Py2IsmTotal()
		m.RiskScore = scan.MaxRisk(m.RiskScore, mod.RiskScore)
		for _, f := range mod.RiskFactors {
			factorSet[f] = true
			if deepReviewFactors[f] {
				deepReview = true
			}
		}
	}

	if m.FanIn >= fanInCriticalThreshold {
		m.RiskScore = scan.MaxRisk(m.RiskScore, scan.RiskCritical)
	} else if m.FanIn >= fanInHighThreshold {
		m.RiskScore = scan.MaxRisk(m.RiskScore, scan.RiskHigh)
	}

	m.RiskFactors = make([]string, 0, len(factorSet))
	for f := range factorSet {
		m.RiskFactors = append(m.RiskFactors, f)
	}
	slices.Sort(m.RiskFactors)

	multiplier := 1.0
	if deepReview {
		multiplier = deepReviewMultiplier
	}
	hours := int(math.Round(float64(m.LinesOfCode) / locPerHour * multiplier))
	if hours < 1 {
		hours = 1
	}
	m.EstimatedEffortHours = hours

	return m
}

// Gateway is a high-fan-in unit whose delay would block
// disproportionately many downstream units.
type Gateway struct {
	Name      string
	FanIn     int
	RiskScore scan.RiskLevel
}

// GatewayUnits returns exactly the units whose fan-in reaches
// GatewayThreshold, sorted by descending fan-in (name ascending on ties).
func GatewayUnits(ug *UnitGraph, metrics map[string]UnitMetrics) []Gateway {
	threshold := GatewayThreshold(ug)

	var gateways []Gateway
	for _, u := range ug.Units() {
		fanIn := ug.FanIn(u.Name)
		if fanIn < threshold {
			continue
		}
		gateways = append(gateways, Gateway{
			Name:      u.Name,
			FanIn:     fanIn,
			RiskScore: metrics[u.Name].RiskScore,
		})
	}
	sort.Slice(gateways, func(i, j int) bool {
		if gateways[i].FanIn != gateways[j].FanIn {
			return gateways[i].FanIn > gateways[j].FanIn
		}
		return gateways[i].Name < gateways[j].Name
	})
	return gateways
}

// GatewayThreshold is max(3, 90th percentile of the positive fan-in
// values across all units), nearest-rank on the sorted values.
func GatewayThreshold(ug *UnitGraph) int {
	var positive []int
	for _, u := range ug.Units() {
		if fanIn := ug.FanIn(u.Name); fanIn > 0 {
			positive = append(positive, fanIn)
		}
	}
	const floor = 3
	if len(positive) == 0 {
		return floor
	}
	slices.Sort(positive)
	idx := int(float64(len(positive)) * 0.9)
	if idx >= len(positive) {
		idx = len(positive) - 1
	}
	if p90 := positive[idx]; p90 > floor {
		return p90
	}
	return floor
}
