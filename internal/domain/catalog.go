package domain

// Category classifies items. One category has many items.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Facility is a museum location where items are on display.
type Facility struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Place is a location linked to items through provenance.
type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Person is a contributor linked to items as maker or associated subject.
type Person struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	BirthDate      *string `json:"birthDate"`
	DeathDate      *string `json:"deathDate"`
	Occupation     *string `json:"occupation"`
	Nationality    *string `json:"nationality"`
	Note           *string `json:"note"`
	Description    *string `json:"description"`
	CollectionsURL *string `json:"collectionsUrl"`
}

// Image is a stored image reference owned by an item. PublicPath is the
// path on the upstream image host.
type Image struct {
	ItemID     string `json:"itemId"`
	PublicPath string `json:"imagePublicPath"`
	IsThumb    bool   `json:"isThumb"`
}

// PersonRelation is a maker or associated-person link row on an item.
type PersonRelation struct {
	PersonID string `json:"personId"`
	Person   Person `json:"person"`
}

// PlaceRelation is a place link row on an item.
type PlaceRelation struct {
	PlaceID string `json:"placeId"`
	Place   Place  `json:"place"`
}

// Item is a fully materialized catalog item. Images holds the non-thumbnail
// images in retrieval order; the position of an image in that slice is its
// public index.
type Item struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Accession        *string          `json:"accession"`
	CategoryID       int              `json:"categoryId"`
	Category         Category         `json:"category"`
	CreationEarliest *int             `json:"creationEarliest"`
	CreationLatest   *int             `json:"creationLatest"`
	OnDisplayAt      *string          `json:"onDisplayAt"`
	Facility         *Facility        `json:"facility"`
	CollectionsURL   *string          `json:"collectionsUrl"`
	Images           []Image          `json:"images"`
	Makers           []PersonRelation `json:"makers"`
	People           []PersonRelation `json:"people"`
	Places           []PlaceRelation  `json:"places"`
}

// ItemSummary is the reduced item shape used in search results and
// related-item lists. Thumbnail is nil when the item has no thumbnail row.
type ItemSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	CreationEarliest *int     `json:"creationEarliest"`
	CreationLatest   *int     `json:"creationLatest"`
	OnDisplayAt      *string  `json:"onDisplayAt"`
	Category         Category `json:"category"`
	Thumbnail        *Image   `json:"thumbnail"`
}
