// Package browser opens the submission form in the user's browser when the
// server starts.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// Launcher implements the BrowserLauncher interface
type Launcher struct {
	browsers  []Browser
	preferred string
}

// Browser represents a browser launch configuration
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// NewLauncher creates a new browser launcher
func NewLauncher() *Launcher {
	return &Launcher{
		browsers: detectBrowsers(),
	}
}

// NewLauncherWithPreference creates a launcher that tries the named browser
// first. An empty name or "default" keeps the platform detection order.
func NewLauncherWithPreference(name string) *Launcher {
	l := NewLauncher()
	if name != "" && !strings.EqualFold(name, "default") {
		l.preferred = name
	}
	return l
}

// Launch opens a URL in the default browser
func (l *Launcher) Launch(url string, noOpen bool) error {
	if noOpen {
		return nil
	}

	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	args := browser.Args(url)
	cmd := exec.Command(browser.Command, args...) // #nosec G204 - browser command validated by selectBrowser

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	// Don't wait for browser to close
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the browser that would be used
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the preferred browser when it is available,
// otherwise the first browser whose executable is in PATH.
func (l *Launcher) selectBrowser() (*Browser, error) {
	if len(l.browsers) == 0 {
		return nil, errors.New("no browsers available")
	}

	if l.preferred != "" {
		for _, candidate := range l.browsers {
			if strings.EqualFold(candidate.Name, l.preferred) {
				if _, err := exec.LookPath(candidate.Command); err == nil {
					return &candidate, nil
				}
			}
		}
	}

	for _, candidate := range l.browsers {
		if _, err := exec.LookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported browsers found on this system")
}

// detectBrowsers lists candidate browsers for the platform, most preferred
// first
func detectBrowsers() []Browser {
	passURL := func(url string) []string { return []string{url} }

	switch runtime.GOOS {
	case "darwin":
		return []Browser{
			{Name: "Default", Command: "open", Args: passURL},
		}
	case "linux":
		return []Browser{
			{Name: "xdg-open", Command: "xdg-open", Args: passURL},
			{Name: "Chrome", Command: "google-chrome", Args: passURL},
			{Name: "Firefox", Command: "firefox", Args: passURL},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "cmd",
				Args: func(url string) []string {
					return []string{"/c", "start", url}
				},
			},
		}
	default:
		return []Browser{}
	}
}

// Ensure Launcher implements ports.BrowserLauncher
var _ ports.BrowserLauncher = (*Launcher)(nil)
