package gallery

import "github.com/kailas-cloud/pixgallery/internal/domain/image"

// Container holds the cards of a gallery in the order they were appended.
// Records are never deduplicated: an image returned on two pages is
// rendered twice.
type Container struct {
	cards []Card
}

// Restore rebuilds a container from stored cards.
func Restore(cards []Card) Container {
	return Container{cards: append([]Card(nil), cards...)}
}

// RenderCards appends one card per item, in input order, and returns the
// newly appended cards.
func (c *Container) RenderCards(items []image.Image) []Card {
	added := make([]Card, 0, len(items))
	for _, item := range items {
		added = append(added, NewCard(item))
	}
	c.cards = append(c.cards, added...)
	return added
}

// Clear removes every card.
func (c *Container) Clear() {
	c.cards = nil
}

// Count returns the number of rendered cards.
func (c *Container) Count() int { return len(c.cards) }

// Cards returns the rendered cards.
func (c *Container) Cards() []Card { return c.cards }

// Clone returns a container that shares no backing storage with c.
func (c *Container) Clone() Container {
	return Restore(c.cards)
}
