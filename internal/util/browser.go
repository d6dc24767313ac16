// Package util holds small host-environment helpers.
package util

import (
	"os/exec"
	"runtime"
)

// OpenBrowser opens the default browser on the given URL. Used in dev mode to
// bring up the dashboard after the server starts; failures are non-fatal.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		// rundll32 is more reliable than `cmd /c start` across Windows versions.
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	err := cmd.Start()
	if err == nil {
		return nil
	}

	// Fallback for desktops without the standard opener.
	if runtime.GOOS == "linux" {
		for _, browser := range []string{"sensible-browser", "firefox", "chromium-browser"} {
			if fallbackErr := exec.Command(browser, url).Start(); fallbackErr == nil {
				return nil
			}
		}
	}
	return err
}
