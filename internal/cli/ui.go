package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/portplan/pkg/plan"
	"github.com/mkessler/portplan/pkg/scan"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - critical
	colorGray   = lipgloss.Color("245") // Gray - secondary text
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	styleCrit  = lipgloss.NewStyle().Foreground(colorRed)
	styleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// renderSummary formats a one-screen plan overview for humans. The JSON
// plan is the machine surface; this is just orientation.
func renderSummary(r *plan.Result) string {
	p := r.Plan
	var b strings.Builder

	b.WriteString(styleTitle.Render("Conversion plan") + "\n")
	fmt.Fprintf(&b, "  modules %s  units %s  waves %s  effort %s days\n",
		styleValue.Render(fmt.Sprint(p.TotalModules)),
		styleValue.Render(fmt.Sprint(p.TotalUnits)),
		styleValue.Render(fmt.Sprint(p.TotalWaves)),
		styleValue.Render(fmt.Sprint(p.EstimatedEffortDays)))
	fmt.Fprintf(&b, "  critical path %s units (~%d days): %s\n",
		styleValue.Render(fmt.Sprint(p.CriticalPath.Length)),
		p.CriticalPath.EstimatedDays,
		styleDim.Render(strings.Join(p.CriticalPath.Units, " -> ")))

	if len(p.GatewayUnits) > 0 {
		b.WriteString(styleTitle.Render("Gateway units") + "\n")
		for _, g := range p.GatewayUnits {
			line := fmt.Sprintf("  %s  fan-in %d  wave %d  risk %s", g.Name, g.FanIn, g.Wave, g.RiskScore)
			if g.RiskScore == scan.RiskCritical {
				line = styleCrit.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	for _, s := range r.Splits {
		b.WriteString(styleWarn.Render(fmt.Sprintf(
			"  warning: cluster of %d modules split into %d parts; %d cyclic edges cross unit boundaries",
			len(s.Members), len(s.Parts), len(s.CrossingEdges))) + "\n")
	}
	if r.Forced {
		b.WriteString(styleCrit.Render("  warning: scheduling anomaly - final wave was forced") + "\n")
	}

	return b.String()
}
