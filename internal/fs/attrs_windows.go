//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	attrHidden       = 0x02
	attrSystem       = 0x04
	attrReparsePoint = 0x0400
)

// IsHidden reports entries carrying the hidden attribute. Dotfiles count as
// hidden when the attributes cannot be read.
func IsHidden(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return isDotfile(name)
	}
	return attrs&attrHidden != 0
}

// ShouldHideFromListing reports system reparse points such as the legacy
// "Application Data" junctions, which are never listed.
func ShouldHideFromListing(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protected = attrSystem | attrReparsePoint
	return attrs&protected == protected
}

// fileAttributes reads attributes for fullPath, retrying with the bare name
// when the full path does not exist.
func fileAttributes(fullPath, name string) (uint32, error) {
	candidates := make([]string, 0, 2)
	if fullPath != "" {
		candidates = append(candidates, fullPath)
	}
	if name != "" && name != fullPath {
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return 0, os.ErrInvalid
	}

	var lastErr error
	for i, target := range candidates {
		ptr, err := syscall.UTF16PtrFromString(target)
		if err != nil {
			return 0, err
		}
		attrs, err := syscall.GetFileAttributes(ptr)
		if err == nil {
			return attrs, nil
		}
		lastErr = err
		if i == 0 && !os.IsNotExist(err) {
			break
		}
	}
	return 0, lastErr
}
