package app

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// Plan output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// RenderPlan writes the plan in publish order
func RenderPlan(w io.Writer, plan domain.Plan, format string) error {
	switch format {
	case "", FormatText:
		step := 1
		for _, g := range plan.Groups() {
			fmt.Fprintf(w, "%s:\n", g.Name)
			for _, p := range g.Packages {
				fmt.Fprintf(w, "  %d. %s (%s)\n", step, p.Name, p.Dir)
				step++
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]domain.Group{"groups": plan.Groups()}); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return enc.Close()
	default:
		return domain.NewValidationError("format", fmt.Sprintf("unknown format %q (use text or yaml)", format))
	}
}
