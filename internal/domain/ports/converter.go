package ports

import "context"

// Converter defines the interface for the external markup-to-binary
// format converter
type Converter interface {
	// Convert transforms the markup file at texPath into the target
	// format and returns the artifact bytes
	Convert(ctx context.Context, texPath string, format OutputFormat) ([]byte, error)

	// Supports reports whether the converter can produce the format
	Supports(format OutputFormat) bool
}
