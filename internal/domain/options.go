package domain

// CommonOptions contains shared options for a release run.
type CommonOptions struct {
	Verbose bool
	DryRun  bool
	NoTag   bool
	Confirm bool
}
