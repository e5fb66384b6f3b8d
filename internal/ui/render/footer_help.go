package render

import "strings"

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText(canAddProject bool) string {
	parts := buildFooterHelpSegments(canAddProject)
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(canAddProject bool) []string {
	segments := []string{
		"↵: open",
		"Tab: complete",
		"↑↓: select",
		"^W: up",
		"^Z: undo",
		"^V/^S: split",
	}
	if canAddProject {
		segments = append(segments, "^T: add project")
	}
	segments = append(segments, "^Y: copy", "Esc: close")
	return segments
}
