package render

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mkessler/portplan/pkg/plan"
	"github.com/mkessler/portplan/pkg/scan"
)

func chainPlan(t *testing.T) *plan.Plan {
	t.Helper()
	s := &scan.Scan{
		Modules: []scan.Module{
			{ModuleID: "app.a", LinesOfCode: 100, RiskScore: scan.RiskLow},
			{ModuleID: "lib.b", LinesOfCode: 100, RiskScore: scan.RiskLow},
		},
		Edges: []scan.Edge{{Source: "app.a", Target: "lib.b"}},
	}
	planner := plan.NewPlanner(plan.Options{Logger: log.New(io.Discard)})
	result, err := planner.Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return result.Plan
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(chainPlan(t), Options{})

	for _, want := range []string{
		"digraph conversion_plan {",
		"rankdir=BT;",
		`"app"`,
		`"lib"`,
		`"app" -> "lib";`,
		"rank=same",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT output not terminated")
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	plain := ToDOT(chainPlan(t), Options{})
	detailed := ToDOT(chainPlan(t), Options{Detailed: true})

	if strings.Contains(plain, "modules |") {
		t.Error("plain labels carry detailed metrics")
	}
	if !strings.Contains(detailed, "1 modules | 1h | low") {
		t.Errorf("detailed labels missing metrics:\n%s", detailed)
	}
}

func TestToDOT_ClusterBorder(t *testing.T) {
	s := &scan.Scan{
		Modules: []scan.Module{
			{ModuleID: "a", LinesOfCode: 10, RiskScore: scan.RiskLow},
			{ModuleID: "b", LinesOfCode: 10, RiskScore: scan.RiskLow},
		},
		Edges: []scan.Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}
	planner := plan.NewPlanner(plan.Options{Logger: log.New(io.Discard)})
	result, err := planner.Build(s)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if dot := ToDOT(result.Plan, Options{}); !strings.Contains(dot, "peripheries=2") {
		t.Errorf("cluster unit not double-bordered:\n%s", dot)
	}
}

func TestToDOT_EmptyPlan(t *testing.T) {
	dot := ToDOT(&plan.Plan{}, Options{})
	if !strings.HasPrefix(dot, "digraph conversion_plan {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty plan produced malformed DOT:\n%s", dot)
	}
}
