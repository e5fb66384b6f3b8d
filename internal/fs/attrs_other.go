//go:build !windows

package fs

// IsHidden reports dotfiles.
func IsHidden(_, name string) bool {
	return isDotfile(name)
}

// ShouldHideFromListing never hides anything outside Windows.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
