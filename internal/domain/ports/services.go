package ports

import (
	"context"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
)

// PitchInput holds the business-description fields collected from the form.
// Name, Vision, Problem, and Solution are required; the rest are optional.
type PitchInput struct {
	Name      string
	Vision    string
	Problem   string
	Solution  string
	Advantage string
	Market    string
	Team      string
}

// OutputFormat selects the binary artifact produced for a deck
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatPPTX OutputFormat = "pptx"
)

// ParseOutputFormat validates a format selector from the request
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatPDF, FormatPPTX:
		return OutputFormat(s), nil
	default:
		return "", &entities.UnknownFormatError{Format: s}
	}
}

// ContentType returns the media type for the artifact
func (f OutputFormat) ContentType() string {
	if f == FormatPPTX {
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return "application/pdf"
}

// Extension returns the artifact filename extension, without the dot
func (f OutputFormat) Extension() string {
	return string(f)
}

// CompletionClient defines the interface for text-completion generation
type CompletionClient interface {
	// Complete sends a prompt to the generation service and returns the
	// first candidate's raw text
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator defines the interface for prompt-to-image generation
type ImageGenerator interface {
	// GenerateImage requests a square image for the prompt and returns a
	// URL where the image bytes can be fetched
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ParseWarning records a completion line the parser could not attribute to
// a slide. Warnings are observability data, never hard errors.
type ParseWarning struct {
	// Line is the 1-based line number in the raw completion text
	Line int `json:"line"`

	// Text is the offending line, trimmed
	Text string `json:"text"`

	// Reason explains why the line was dropped
	Reason string `json:"reason"`
}

// CompletionParser defines the interface for extracting slides from raw
// completion text
type CompletionParser interface {
	// Parse leniently extracts slides; unrecognized lines are dropped
	Parse(text string) []entities.Slide

	// ParseStrict extracts slides and reports every dropped non-blank line
	ParseStrict(text string) ([]entities.Slide, []ParseWarning)
}

// ImageAugmenter defines the interface for attaching generated images to a
// subset of slides
type ImageAugmenter interface {
	// Augment sets ImagePath on the selected slides, in place. Paths of
	// files it created are returned even on error so the caller can
	// guarantee cleanup.
	Augment(ctx context.Context, slides []entities.Slide) (created []string, err error)
}

// GenerateResult is the outcome of a full pipeline run
type GenerateResult struct {
	// Artifact holds the converted presentation bytes
	Artifact []byte

	// Format is the artifact's output format
	Format OutputFormat

	// Filename is the suggested download filename, derived from the deck title
	Filename string

	// Warnings lists completion lines the parser dropped
	Warnings []ParseWarning

	// SlideCount is the number of slides extracted from the completion
	SlideCount int
}

// DeckService defines the main pipeline interface: prompt, complete, parse,
// augment, render, convert
type DeckService interface {
	// GenerateDeck runs the full pipeline for one request
	GenerateDeck(ctx context.Context, input PitchInput, format OutputFormat, logoPath string) (*GenerateResult, error)
}
