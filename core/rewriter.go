package core

import "strings"

const (
	// ExplicitMarker is the token that flags a version label as explicit.
	ExplicitMarker = "Explicit"

	// VersionSeparator delimits the tokens of a version label.
	VersionSeparator = ", "
)

// RewriteVersion returns the version label with the explicit marker appended
// to its first token. The label is returned unchanged when explicitFound is
// false or when it already carries the marker, which makes the rewrite
// idempotent. Tokens after the first pass through untouched.
func RewriteVersion(version string, explicitFound bool) string {
	if !explicitFound || strings.Contains(version, ExplicitMarker) {
		return version
	}

	parts := strings.Split(version, VersionSeparator)
	parts[0] += " " + ExplicitMarker

	return strings.Join(parts, VersionSeparator)
}
