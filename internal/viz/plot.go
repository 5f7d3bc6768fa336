// Package viz renders trajectories and energy series as terminal
// plots. Presentation glue only: it consumes results by time index and
// never feeds anything back into the numerical layers.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/oscilab/oscilab/internal/energy"
	"github.com/oscilab/oscilab/internal/osc"
)

const (
	plotHeight = 12
	plotWidth  = 80
)

// Line renders a single series as an ascii plot with a caption.
func Line(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Displacement plots a trajectory's displacement over its grid.
func Displacement(tr *osc.Trajectory, caption string) string {
	return Line(tr.Displacement(), caption)
}

// Energies plots kinetic, potential and total energy as three stacked
// panels so their scales stay readable independently.
func Energies(s *energy.Series) string {
	var b strings.Builder
	b.WriteString(Line(s.Kinetic, "kinetic energy"))
	b.WriteString("\n\n")
	b.WriteString(Line(s.Potential, "potential energy"))
	b.WriteString("\n\n")
	b.WriteString(Line(s.Total, "total energy"))
	return b.String()
}

// UnstableNotice renders the warning line for a flagged trajectory,
// or an empty string for a stable one.
func UnstableNotice(tr *osc.Trajectory) string {
	if !tr.Unstable {
		return ""
	}
	return Warn.Render(fmt.Sprintf("warning: state bound exceeded at t=%.4f; result is a numerical blow-up", tr.UnstableAt))
}
