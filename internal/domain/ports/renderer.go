package ports

import "github.com/vnayar/pitchdeck/internal/domain/entities"

// DeckRenderer defines the interface for serializing a deck into
// presentation markup
type DeckRenderer interface {
	// Render produces a complete markup document for the deck
	Render(deck *entities.Deck) (string, error)
}
