package scan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkessler/portplan/pkg/errors"
)

func TestRiskLevelOrdering(t *testing.T) {
	ordered := []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%s ranks %d, not below %s at %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
	if got := MaxRisk(RiskMedium, RiskHigh); got != RiskHigh {
		t.Errorf("MaxRisk(medium, high) = %s, want high", got)
	}
	if got := MaxRisk(RiskCritical, RiskLow); got != RiskCritical {
		t.Errorf("MaxRisk(critical, low) = %s, want critical", got)
	}
	if RiskLevel("severe").Valid() {
		t.Error("unknown level reported as valid")
	}
	if RiskLevel("severe").Rank() >= RiskLow.Rank() {
		t.Error("unknown level must rank below low")
	}
}

func TestPy2IsmTotal(t *testing.T) {
	m := Module{Py2IsmCounts: map[string]int{"print_statements": 3, "dict_iteration": 2}}
	if got := m.Py2IsmTotal(); got != 5 {
		t.Errorf("Py2IsmTotal() = %d, want 5", got)
	}
	if got := (Module{}).Py2IsmTotal(); got != 0 {
		t.Errorf("Py2IsmTotal() on empty counts = %d, want 0", got)
	}
}

func validScan() *Scan {
	return &Scan{
		Modules: []Module{
			{ModuleID: "app.a", FilePath: "app/a.py", LinesOfCode: 100, RiskScore: RiskLow},
			{ModuleID: "lib.b", FilePath: "lib/b.py", LinesOfCode: 200, RiskScore: RiskMedium},
		},
		Edges: []Edge{{Source: "app.a", Target: "lib.b"}},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Scan)
		wantCode errors.Code
	}{
		{
			name:   "valid scan passes",
			mutate: func(*Scan) {},
		},
		{
			name:     "missing module id",
			mutate:   func(s *Scan) { s.Modules[0].ModuleID = "" },
			wantCode: errors.ErrCodeMissingModuleID,
		},
		{
			name:     "duplicate module id",
			mutate:   func(s *Scan) { s.Modules[1].ModuleID = "app.a" },
			wantCode: errors.ErrCodeDuplicateModule,
		},
		{
			name:     "unknown risk level",
			mutate:   func(s *Scan) { s.Modules[0].RiskScore = "severe" },
			wantCode: errors.ErrCodeInvalidRisk,
		},
		{
			name:     "negative lines of code",
			mutate:   func(s *Scan) { s.Modules[0].LinesOfCode = -1 },
			wantCode: errors.ErrCodeInvalidMetric,
		},
		{
			name:     "negative function count",
			mutate:   func(s *Scan) { s.Modules[1].NumFunctions = -3 },
			wantCode: errors.ErrCodeInvalidMetric,
		},
		{
			name:     "edge to unknown module is not fatal",
			mutate:   func(s *Scan) { s.Edges = append(s.Edges, Edge{Source: "app.a", Target: "nowhere"}) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validScan()
			tc.mutate(s)
			err := Validate(s)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() accepted a malformed scan")
			}
			if got := errors.GetCode(err); got != tc.wantCode {
				t.Errorf("error code = %s, want %s", got, tc.wantCode)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	idx := Index(validScan())
	if len(idx) != 2 {
		t.Fatalf("Index() has %d entries, want 2", len(idx))
	}
	if idx["lib.b"].LinesOfCode != 200 {
		t.Errorf("lib.b lines_of_code = %d, want 200", idx["lib.b"].LinesOfCode)
	}
}

func TestScanFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.json")
	original := validScan()

	if err := WriteScanFile(original, path); err != nil {
		t.Fatalf("WriteScanFile() error: %v", err)
	}
	loaded, err := ReadScanFile(path)
	if err != nil {
		t.Fatalf("ReadScanFile() error: %v", err)
	}

	if len(loaded.Modules) != 2 || len(loaded.Edges) != 1 {
		t.Fatalf("loaded %d modules, %d edges, want 2, 1", len(loaded.Modules), len(loaded.Edges))
	}
	if loaded.Modules[0].ModuleID != "app.a" || loaded.Modules[0].RiskScore != RiskLow {
		t.Errorf("first module = %+v, want app.a/low", loaded.Modules[0])
	}
}

func TestReadScan_RejectsMalformed(t *testing.T) {
	if _, err := ReadScan(strings.NewReader("{not json")); err == nil {
		t.Error("ReadScan() accepted invalid JSON")
	}

	invalid := `{"modules": [{"module_id": "a", "risk_score": "severe"}]}`
	_, err := ReadScan(strings.NewReader(invalid))
	if err == nil {
		t.Fatal("ReadScan() accepted an unknown risk level")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidRisk {
		t.Errorf("error code = %s, want %s", got, errors.ErrCodeInvalidRisk)
	}
}

func TestReadScanFile_MissingFile(t *testing.T) {
	if _, err := ReadScanFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ReadScanFile() succeeded on a missing file")
	}
}
