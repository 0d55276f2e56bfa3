package entities

import (
	"errors"
	"strings"
)

// Slide represents a single slide in a pitch deck
type Slide struct {
	// Title is the slide title as extracted from the completion text
	Title string `json:"title"`

	// Items contains the bullet points in insertion order
	Items []string `json:"items"`

	// ImagePath is the local path to a generated illustration, if any.
	// Set by the image augmenter; empty when the slide has no image.
	ImagePath string `json:"image_path,omitempty"`
}

// HasImage returns true if the slide has an associated image file
func (s *Slide) HasImage() bool {
	return s.ImagePath != ""
}

// ImagePrompt derives an image-generation prompt from the slide's bullet
// points, joined by single spaces.
func (s *Slide) ImagePrompt() string {
	return strings.Join(s.Items, " ")
}

// Validate ensures the slide has renderable content
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" && len(s.Items) == 0 {
		return errors.New("slide must have a title or at least one item")
	}
	return nil
}
