package entities

import "fmt"

// MissingFieldError indicates a required form or prompt field was absent.
// It maps to a client error at the request boundary.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// UpstreamError indicates the generation service was unreachable, returned
// an error, or produced no candidates. It is surfaced whole; no retry.
type UpstreamError struct {
	Operation string
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream %s failed", e.Operation)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// FetchError indicates downloading a generated image over HTTP failed
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ConversionError indicates the external format converter failed. Output
// holds the tool's combined output, trimmed for logging.
type ConversionError struct {
	Format string
	Output string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting to %s: %v", e.Format, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// UnknownFormatError indicates a format selector outside the supported set
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %q (supported: pdf, pptx)", e.Format)
}
