package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mkessler/portplan/pkg/scan"
)

// hoursPerDay converts aggregated effort hours into working days.
const hoursPerDay = 8

// UnitRecord is the serialized form of one conversion unit with its
// aggregated metrics. All slices are sorted and never nil, keeping the
// encoded plan order-stable.
type UnitRecord struct {
	Name                 string         `json:"name"`
	Modules              []string       `json:"modules"`
	IsCluster            bool           `json:"is_cluster"`
	Dependencies         []string       `json:"dependencies"`
	RiskScore            scan.RiskLevel `json:"risk_score"`
	RiskFactors          []string       `json:"risk_factors"`
	Py2IsmCount          int            `json:"py2_ism_count"`
	LinesOfCode          int            `json:"lines_of_code"`
	FanIn                int            `json:"fan_in"`
	EstimatedEffortHours int            `json:"estimated_effort_hours"`
	ModuleCount          int            `json:"module_count"`
}

// WaveRecord is one scheduling layer of the plan. Forced marks the
// defensive final wave produced when a cycle unexpectedly survives unit
// formation.
type WaveRecord struct {
	Wave   int          `json:"wave"`
	Units  []UnitRecord `json:"units"`
	Forced bool         `json:"forced,omitempty"`
}

// CriticalPathRecord is the serialized longest dependency chain.
type CriticalPathRecord struct {
	Length        int      `json:"length"`
	Units         []string `json:"units"`
	EstimatedDays int      `json:"estimated_days"`
}

// GatewayRecord is one high-fan-in gateway unit.
type GatewayRecord struct {
	Name      string         `json:"name"`
	FanIn     int            `json:"fan_in"`
	Wave      int            `json:"wave"`
	RiskScore scan.RiskLevel `json:"risk_score"`
}

// Plan is the complete conversion plan. It is a plain, acyclic,
// order-stable structure: two runs over identical input serialize to
// byte-identical JSON.
type Plan struct {
	TotalModules         int                `json:"total_modules"`
	TotalUnits           int                `json:"total_units"`
	TotalWaves           int                `json:"total_waves"`
	EstimatedEffortDays  int                `json:"estimated_effort_days"`
	Parallelism          int                `json:"parallelism"`
	ExternalDependencies int                `json:"external_dependencies"`
	Waves                []WaveRecord       `json:"waves"`
	CriticalPath         CriticalPathRecord `json:"critical_path"`
	GatewayUnits         []GatewayRecord    `json:"gateway_units"`
}

// =============================================================================
// Plan Serialization API
// =============================================================================

// MarshalPlan converts a Plan to indented JSON bytes.
func MarshalPlan(p *Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePlanTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlanFile writes a Plan to a JSON file.
// The file is created with 0644 permissions.
func WritePlanFile(p *Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePlanTo(p, f)
}

// WritePlan writes a Plan as JSON to an io.Writer.
func WritePlan(p *Plan, w io.Writer) error {
	return writePlanTo(p, w)
}

// ReadPlan decodes a JSON plan from an io.Reader.
func ReadPlan(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &p, nil
}

func writePlanTo(p *Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
