package entity

import "time"

// Book represents a catalog entry. Genre is a single free-text field that may
// carry several comma separated tags (e.g. "fantasy, adventure").
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	AuthorBengali string    `json:"author_bengali,omitempty"`
	PublishedYear int       `json:"published_year"`
	Quantity      int       `json:"quantity"`
	ISBN          string    `json:"isbn,omitempty"`
	Genre         string    `json:"genre,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Available reports whether at least one copy is on the shelf.
func (b Book) Available() bool {
	return b.Quantity > 0
}
