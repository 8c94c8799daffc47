package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescPublishing is the progress bar description for publish runs
const DescPublishing = "Publishing"

// NewProgressBar creates a consistently styled progress bar.
//
// The bar writes to out and clears itself on completion so the package
// messages printed around it stay readable. A nil out discards output.
//
// Example:
//
//	bar := utils.NewProgressBar(plan.Len(), utils.DescPublishing, os.Stderr)
//	defer bar.Finish()
//
//	for _, pkg := range plan.Packages() {
//	    // Publish pkg
//	    bar.Add(1)
//	}
func NewProgressBar(total int, description string, out io.Writer) *progressbar.ProgressBar {
	if out == nil {
		out = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
