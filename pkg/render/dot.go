// Package render exports the unit dependency graph for visual inspection.
//
// ToDOT produces Graphviz DOT text grouping units by wave; RenderSVG
// rasterizes it in-process via github.com/goccy/go-graphviz. Edges point
// from dependent unit to dependency, matching the import direction of
// the underlying modules.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mkessler/portplan/pkg/plan"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes module counts and effort hours in node labels.
	// When false, only the unit name and wave are shown.
	Detailed bool
}

// ToDOT converts a plan's unit graph to Graphviz DOT format. Units in the
// same wave share a rank so the drawing mirrors the schedule. Cluster
// units are drawn with a double border; forced waves are tinted red.
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph conversion_plan {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, w := range p.Waves {
		fmt.Fprintf(&buf, "  { rank=same;")
		for _, u := range w.Units {
			fmt.Fprintf(&buf, " %q;", u.Name)
		}
		buf.WriteString(" }\n")
		for _, u := range w.Units {
			attrs := []string{fmt.Sprintf("label=%q", nodeLabel(u, w, opts.Detailed))}
			if u.IsCluster {
				attrs = append(attrs, "peripheries=2")
			}
			if w.Forced {
				attrs = append(attrs, "fillcolor=mistyrose")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", u.Name, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("\n")
	for _, w := range p.Waves {
		for _, u := range w.Units {
			for _, dep := range u.Dependencies {
				fmt.Fprintf(&buf, "  %q -> %q;\n", u.Name, dep)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(u plan.UnitRecord, w plan.WaveRecord, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%s\nwave %d", u.Name, w.Wave)
	}
	return fmt.Sprintf("%s\nwave %d | %d modules | %dh | %s",
		u.Name, w.Wave, u.ModuleCount, u.EstimatedEffortHours, u.RiskScore)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
