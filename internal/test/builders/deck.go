package builders

import (
	"strconv"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a new deck builder with sensible defaults
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			Title:    "Test Deck",
			Subtitle: "A test subtitle",
			Author:   "Test Author",
			Date:     "2024-01-01",
			Slides:   []entities.Slide{},
		},
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	return b
}

// WithSubtitle sets the deck subtitle
func (b *DeckBuilder) WithSubtitle(subtitle string) *DeckBuilder {
	b.deck.Subtitle = subtitle
	return b
}

// WithAuthor sets the deck author
func (b *DeckBuilder) WithAuthor(author string) *DeckBuilder {
	b.deck.Author = author
	return b
}

// WithInstitute sets the deck institute line
func (b *DeckBuilder) WithInstitute(institute string) *DeckBuilder {
	b.deck.Institute = institute
	return b
}

// WithDate sets the deck date
func (b *DeckBuilder) WithDate(date string) *DeckBuilder {
	b.deck.Date = date
	return b
}

// WithLogo sets the deck logo path
func (b *DeckBuilder) WithLogo(path string) *DeckBuilder {
	b.deck.LogoPath = path
	return b
}

// WithSlides sets the deck slides
func (b *DeckBuilder) WithSlides(slides []entities.Slide) *DeckBuilder {
	b.deck.Slides = slides
	return b
}

// WithSlide adds a single slide to the deck
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		slide := NewSlideBuilder().
			WithTitle("Slide " + strconv.Itoa(i+1)).
			Build()
		b.deck.Slides = append(b.deck.Slides, slide)
	}
	return b
}

// Build returns the built deck
func (b *DeckBuilder) Build() *entities.Deck {
	return b.deck
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			Title: "Test Slide",
			Items: []string{"First point", "Second point"},
		},
	}
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithItems sets the slide bullet items
func (b *SlideBuilder) WithItems(items ...string) *SlideBuilder {
	b.slide.Items = items
	return b
}

// WithItem appends a bullet item to the slide
func (b *SlideBuilder) WithItem(item string) *SlideBuilder {
	b.slide.Items = append(b.slide.Items, item)
	return b
}

// WithImage sets the slide image path
func (b *SlideBuilder) WithImage(path string) *SlideBuilder {
	b.slide.ImagePath = path
	return b
}

// Build returns the built slide
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide
}
