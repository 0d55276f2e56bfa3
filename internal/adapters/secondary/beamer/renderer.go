// Package beamer serializes a deck into LaTeX beamer markup for the
// external format converter.
package beamer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// latexSpecial matches the characters that carry meaning in LaTeX source
// and must be backslash-escaped in user-supplied text.
var latexSpecial = regexp.MustCompile(`([&%$#_{}])`)

// Escape backslash-prefixes every LaTeX-special character in s. It is
// applied exactly once per field during rendering; callers must not
// pre-escape their input.
func Escape(s string) string {
	return latexSpecial.ReplaceAllString(s, `\$1`)
}

// Renderer implements deck rendering to beamer markup
type Renderer struct {
	theme string
}

// NewRenderer creates a new beamer renderer with the default theme
func NewRenderer() *Renderer {
	return &Renderer{theme: "Madrid"}
}

// SetTheme overrides the beamer theme declaration
func (r *Renderer) SetTheme(theme string) {
	if theme != "" {
		r.theme = theme
	}
}

// Render produces a complete beamer document for the deck: preamble, title
// page declarations (each only when non-empty), theme, a title slide, and
// one frame per deck slide. Slides with an image render as a two-column
// frame with the image beside the bullet list.
func (r *Renderer) Render(deck *entities.Deck) (string, error) {
	if deck == nil {
		return "", fmt.Errorf("deck is nil")
	}

	var b strings.Builder

	b.WriteString("\\documentclass{beamer}\n\n")
	b.WriteString("\\usepackage{graphicx}\n\n")

	r.writePreamble(&b, deck)

	b.WriteString("\\begin{document}\n\n")
	b.WriteString("\\frame{\\titlepage}\n\n")

	for i := range deck.Slides {
		r.writeFrame(&b, &deck.Slides[i])
	}

	b.WriteString("\\end{document}\n")

	return b.String(), nil
}

// writePreamble emits the title page declarations. The date is rendered
// verbatim; everything else is user text and gets escaped.
func (r *Renderer) writePreamble(b *strings.Builder, deck *entities.Deck) {
	if deck.Title != "" {
		fmt.Fprintf(b, "\\title{%s}\n", Escape(deck.Title))
	}
	if deck.Subtitle != "" {
		fmt.Fprintf(b, "\\subtitle{%s}\n", Escape(deck.Subtitle))
	}
	if deck.Author != "" {
		fmt.Fprintf(b, "\\author{%s}\n", Escape(deck.Author))
	}
	if deck.Institute != "" {
		fmt.Fprintf(b, "\\institute{%s}\n", Escape(deck.Institute))
	}
	if deck.Date != "" {
		fmt.Fprintf(b, "\\date{%s}\n", deck.Date)
	}
	if deck.LogoPath != "" {
		// Local file path, not user text; escaping would corrupt it.
		fmt.Fprintf(b, "\\logo{\\includegraphics[height=1cm]{%s}}\n", deck.LogoPath)
	}
	fmt.Fprintf(b, "\\usetheme{%s}\n\n", r.theme)
}

func (r *Renderer) writeFrame(b *strings.Builder, slide *entities.Slide) {
	b.WriteString("\\begin{frame}\n")
	fmt.Fprintf(b, "\\frametitle{%s}\n", Escape(slide.Title))

	if slide.HasImage() {
		b.WriteString("\\begin{columns}\n")
		b.WriteString("\\begin{column}{0.5\\textwidth}\n")
		fmt.Fprintf(b, "\\includegraphics[width=\\textwidth]{%s}\n", slide.ImagePath)
		b.WriteString("\\end{column}\n")
		b.WriteString("\\begin{column}{0.5\\textwidth}\n")
		r.writeItems(b, slide.Items)
		b.WriteString("\\end{column}\n")
		b.WriteString("\\end{columns}\n")
	} else {
		r.writeItems(b, slide.Items)
	}

	b.WriteString("\\end{frame}\n\n")
}

// writeItems emits an itemize environment. An empty environment is invalid
// LaTeX, so slides without items produce nothing here.
func (r *Renderer) writeItems(b *strings.Builder, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\\begin{itemize}\n")
	for _, item := range items {
		fmt.Fprintf(b, "\\item %s\n", Escape(item))
	}
	b.WriteString("\\end{itemize}\n")
}

// Ensure Renderer implements ports.DeckRenderer
var _ ports.DeckRenderer = (*Renderer)(nil)
