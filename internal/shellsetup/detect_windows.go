//go:build windows

package shellsetup

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName returns the image name of the parent process, such
// as "pwsh" or "cmd", or "" when it cannot be queried.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ppid))
	if err != nil {
		return ""
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	image, err := processImageName(handle)
	if err != nil {
		return ""
	}
	return canonicalShellName(normalizeShellName(image))
}

func processImageName(handle windows.Handle) (string, error) {
	buf := make([]uint16, 260)
	for {
		size := uint32(len(buf))
		err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size)
		if err == nil {
			return windows.UTF16ToString(buf[:size]), nil
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) || len(buf) >= 32*1024 {
			return "", err
		}
		buf = make([]uint16, len(buf)*2)
	}
}
