package entities

import (
	"errors"
	"fmt"
)

// Deck represents a complete pitch deck with metadata and slides
type Deck struct {
	// Title is the deck title, typically the business name
	Title string `json:"title"`

	// Subtitle is a secondary line on the title page, typically the vision
	Subtitle string `json:"subtitle,omitempty"`

	// Author is an optional author line for the title page
	Author string `json:"author,omitempty"`

	// Institute is an optional institute/company line for the title page
	Institute string `json:"institute,omitempty"`

	// Date is the presentation date, rendered verbatim
	Date string `json:"date,omitempty"`

	// LogoPath is the local path to an uploaded logo image, if any
	LogoPath string `json:"logo_path,omitempty"`

	// Slides contains all deck slides in order
	Slides []Slide `json:"slides"`
}

// Validate ensures the deck has valid required fields
func (d *Deck) Validate() error {
	if d.Title == "" {
		return errors.New("deck title is required")
	}

	for i, slide := range d.Slides {
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	return nil
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}
