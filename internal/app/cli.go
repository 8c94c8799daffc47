package app

// Usage is printed for a bare help invocation
const Usage = `Usage: cw-release [-h|--help]
Publishes the workspace crates to crates.io, then tags the release as v<version> and pushes the tag to origin.
`

// IsHelpInvocation reports whether args is exactly one help flag. Any
// other argument list, including a help flag followed by more
// arguments, runs the release.
func IsHelpInvocation(args []string) bool {
	if len(args) != 1 {
		return false
	}
	return args[0] == "-h" || args[0] == "--help"
}
