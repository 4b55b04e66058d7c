package scan

// RiskLevel classifies how risky a module's conversion is expected to be.
// Levels are totally ordered: low < medium < high < critical.
type RiskLevel string

// Risk levels in ascending order of severity.
const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskRanks maps each valid level to its position in the severity order.
var riskRanks = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Valid reports whether r is one of the four known risk levels.
func (r RiskLevel) Valid() bool {
	_, ok := riskRanks[r]
	return ok
}

// Rank returns the severity rank of r (0 for low through 3 for critical).
// Unknown levels rank below low.
func (r RiskLevel) Rank() int {
	if rank, ok := riskRanks[r]; ok {
		return rank
	}
	return -1
}

// MaxRisk returns the more severe of a and b.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Module is one scanned source module. Records are read-only input to the
// planner and are never mutated after decoding.
type Module struct {
	ModuleID     string         `json:"module_id"`
	FilePath     string         `json:"file_path"`
	LinesOfCode  int            `json:"lines_of_code"`
	NumFunctions int            `json:"num_functions"`
	NumClasses   int            `json:"num_classes"`
	RiskScore    RiskLevel      `json:"risk_score"`
	RiskFactors  []string       `json:"risk_factors"`
	Py2IsmCounts map[string]int `json:"py2_ism_counts"`
}

// Py2IsmTotal returns the sum of all py2-ism category counts.
func (m Module) Py2IsmTotal() int {
	total := 0
	for _, n := range m.Py2IsmCounts {
		total += n
	}
	return total
}

// Edge is a directed import relationship between two modules.
type Edge struct {
	Source string `json:"source_module_id"`
	Target string `json:"target_module_id"`
}

// Scan is the raw scanner output: a flat module inventory plus the
// import edges observed between modules.
type Scan struct {
	Modules []Module `json:"modules"`
	Edges   []Edge   `json:"edges"`
}
