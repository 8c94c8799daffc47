package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// DescribePlan renders the plan as one line per group, in publish order
func DescribePlan(plan domain.Plan) string {
	var b strings.Builder
	for _, g := range plan.Groups() {
		dirs := make([]string, 0, len(g.Packages))
		for _, p := range g.Packages {
			dirs = append(dirs, p.Dir)
		}
		fmt.Fprintf(&b, "%s: %s\n", g.Name, strings.Join(dirs, ", "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// CreateConfirmForm builds the release confirmation prompt
func CreateConfirmForm(plan domain.Plan, remote string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Publish %d packages and push the release tag to %s?", plan.Len(), remote)).
				Description(DescribePlan(plan)).
				Affirmative("Publish").
				Negative("Cancel").
				Value(confirmed),
		),
	).WithTheme(GetTheme())
}

// ConfirmRelease asks the user to approve the plan. It returns
// domain.ErrAborted when the user declines.
func ConfirmRelease(plan domain.Plan, remote string) error {
	var confirmed bool
	if err := CreateConfirmForm(plan, remote, &confirmed).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return domain.ErrAborted
		}
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if !confirmed {
		return domain.ErrAborted
	}
	return nil
}
