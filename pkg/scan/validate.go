package scan

import (
	"github.com/mkessler/portplan/pkg/errors"
)

// Validate checks every module record in the scan and returns the first
// fatal problem found. Edges are intentionally not validated here: edges
// naming unknown modules are normalized into external-dependency counts
// during graph construction, never rejected.
//
// Fatal conditions, each naming the offending record:
//   - missing module_id
//   - duplicate module_id
//   - unknown risk_score level
//   - negative lines_of_code, num_functions, or num_classes
func Validate(s *Scan) error {
	seen := make(map[string]bool, len(s.Modules))
	for i, m := range s.Modules {
		if m.ModuleID == "" {
			return errors.New(errors.ErrCodeMissingModuleID,
				"module record %d (%s) has no module_id", i, m.FilePath)
		}
		if seen[m.ModuleID] {
			return errors.New(errors.ErrCodeDuplicateModule,
				"duplicate module id: %s", m.ModuleID)
		}
		seen[m.ModuleID] = true

		if !m.RiskScore.Valid() {
			return errors.New(errors.ErrCodeInvalidRisk,
				"module %s has unknown risk_score %q", m.ModuleID, m.RiskScore)
		}
		if m.LinesOfCode < 0 || m.NumFunctions < 0 || m.NumClasses < 0 {
			return errors.New(errors.ErrCodeInvalidMetric,
				"module %s has negative size metrics", m.ModuleID)
		}
	}
	return nil
}

// Index builds a module_id lookup over a validated scan.
// The returned map shares the scan's module values.
func Index(s *Scan) map[string]Module {
	idx := make(map[string]Module, len(s.Modules))
	for _, m := range s.Modules {
		idx[m.ModuleID] = m
	}
	return idx
}
