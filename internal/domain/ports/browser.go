package ports

// BrowserLauncher defines the interface for opening the form page in the
// user's browser
type BrowserLauncher interface {
	// Launch opens a URL in the default browser; a no-op when noOpen is set
	Launch(url string, noOpen bool) error

	// Detect returns the name of the browser that would be used
	Detect() (string, error)
}
