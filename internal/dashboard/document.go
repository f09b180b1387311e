package dashboard

import "github.com/emiliopalmerini/timedash/internal/domain"

// Placeholder text shown before any dataset has been rendered.
const (
	PlaceholderCurrent  = "--hrs"
	PlaceholderPrevious = "-"
)

// Card is the region displaying one activity's current and previous values.
type Card struct {
	ID       string
	Title    string
	Current  string
	Previous string
}

// Selector is a timeframe control. Timeframe holds the raw attribute value,
// which is not guaranteed to be a valid timeframe.
type Selector struct {
	Timeframe string
	Label     string
	Active    bool
}

// Document is the set of page elements a Renderer writes into.
// It is not safe for concurrent use; the owning Renderer serializes access.
type Document struct {
	cards     []*Card
	index     map[string]*Card
	selectors []*Selector
	writes    int
}

// NewDocument returns the default page: one placeholder card per known
// activity and one selector per timeframe, with the default timeframe active.
func NewDocument() *Document {
	cards := make([]Card, 0, len(domain.Titles))
	for _, title := range domain.Titles {
		id, _ := domain.CardID(title)
		cards = append(cards, Card{ID: id, Title: title})
	}

	selectors := make([]Selector, 0, len(domain.Timeframes))
	for _, tf := range domain.Timeframes {
		selectors = append(selectors, Selector{
			Timeframe: tf.String(),
			Label:     tf.DisplayName(),
			Active:    tf == domain.DefaultTimeframe,
		})
	}

	return NewCustomDocument(cards, selectors)
}

// NewCustomDocument builds a document from explicit markup. Empty text
// regions are filled with placeholders.
func NewCustomDocument(cards []Card, selectors []Selector) *Document {
	d := &Document{index: make(map[string]*Card, len(cards))}
	for _, c := range cards {
		card := c
		if card.Current == "" {
			card.Current = PlaceholderCurrent
		}
		if card.Previous == "" {
			card.Previous = PlaceholderPrevious
		}
		d.add(card)
	}
	for _, s := range selectors {
		sel := s
		d.selectors = append(d.selectors, &sel)
	}
	return d
}

// add appends c. When ids repeat, lookups resolve to the first card.
func (d *Document) add(c Card) {
	card := &c
	d.cards = append(d.cards, card)
	if _, ok := d.index[c.ID]; !ok {
		d.index[c.ID] = card
	}
}

// clone copies cards and selectors; the write count starts at zero.
func (d *Document) clone() *Document {
	out := &Document{index: make(map[string]*Card, len(d.cards))}
	for _, c := range d.cards {
		out.add(*c)
	}
	for _, s := range d.selectors {
		sel := *s
		out.selectors = append(out.selectors, &sel)
	}
	return out
}

// Card finds the card tagged with id.
func (d *Document) Card(id string) (*Card, bool) {
	c, ok := d.index[id]
	return c, ok
}

func (d *Document) setText(c *Card, current, previous string) {
	c.Current = current
	c.Previous = previous
	d.writes++
}

// Writes counts text writes made to cards since the document was created.
func (d *Document) Writes() int {
	return d.writes
}

// Cards returns a copy of every card in layout order.
func (d *Document) Cards() []Card {
	out := make([]Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = *c
	}
	return out
}

// Selectors returns a copy of every selector in layout order.
func (d *Document) Selectors() []Selector {
	out := make([]Selector, len(d.selectors))
	for i, s := range d.selectors {
		out[i] = *s
	}
	return out
}
