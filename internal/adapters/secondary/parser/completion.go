// Package parser extracts structured slides from the free-text completion
// returned by the generation service.
package parser

import (
	"strings"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

const (
	slideMarker = "Slide "
	itemMarker  = "- "
)

// CompletionParser implements the line-oriented slide text format: a line
// "Slide <n>: <title>" starts a slide, a line "- <text>" appends a bullet to
// the most recently started slide, and every other line is ignored. The
// format is requested from the model but never guaranteed; a completion with
// no recognizable lines parses to zero slides, which is a legitimate result.
type CompletionParser struct{}

// NewCompletionParser creates a new completion parser
func NewCompletionParser() *CompletionParser {
	return &CompletionParser{}
}

// Parse leniently extracts slides, silently dropping anything that does not
// match the expected format.
func (p *CompletionParser) Parse(text string) []entities.Slide {
	slides, _ := p.ParseStrict(text)
	return slides
}

// ParseStrict extracts slides and additionally reports every non-blank line
// that had to be dropped. Warnings are observability data; they never make
// the parse fail.
func (p *CompletionParser) ParseStrict(text string) ([]entities.Slide, []ports.ParseWarning) {
	slides := []entities.Slide{}
	var warnings []ports.ParseWarning

	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, slideMarker):
			_, title, found := strings.Cut(line, ":")
			if !found {
				warnings = append(warnings, ports.ParseWarning{
					Line:   n + 1,
					Text:   line,
					Reason: "slide marker without colon",
				})
				continue
			}
			slides = append(slides, entities.Slide{
				Title: strings.TrimSpace(title),
				Items: []string{},
			})

		case strings.HasPrefix(line, itemMarker):
			if len(slides) == 0 {
				// A bullet before any slide title has nothing to
				// attach to.
				warnings = append(warnings, ports.ParseWarning{
					Line:   n + 1,
					Text:   line,
					Reason: "bullet before any slide",
				})
				continue
			}
			last := &slides[len(slides)-1]
			last.Items = append(last.Items, line[len(itemMarker):])

		case line != "":
			warnings = append(warnings, ports.ParseWarning{
				Line:   n + 1,
				Text:   line,
				Reason: "unrecognized line",
			})
		}
	}

	return slides, warnings
}

// Ensure CompletionParser implements ports.CompletionParser
var _ ports.CompletionParser = (*CompletionParser)(nil)
