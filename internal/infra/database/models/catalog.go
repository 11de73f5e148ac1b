package models

// Category classifies items.
type Category struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"type:text;not null"`
}

// Facility is a display location referenced by Item.OnDisplayAt.
type Facility struct {
	ID   string `json:"id" gorm:"primaryKey;type:text"`
	Name string `json:"name" gorm:"type:text;not null"`
}

type Place struct {
	ID   string `json:"id" gorm:"primaryKey;type:text"`
	Name string `json:"name" gorm:"type:text;not null"`
}

type Person struct {
	ID             string  `json:"id" gorm:"primaryKey;type:text"`
	Name           *string `json:"name" gorm:"type:text"`
	BirthDate      *string `json:"birthDate" gorm:"type:text"`
	DeathDate      *string `json:"deathDate" gorm:"type:text"`
	Occupation     *string `json:"occupation" gorm:"type:text"`
	Nationality    *string `json:"nationality" gorm:"type:text"`
	Note           *string `json:"note" gorm:"type:text"`
	Description    *string `json:"description" gorm:"type:text"`
	CollectionsURL *string `json:"collectionsUrl" gorm:"type:text"`
}

// Item is a catalog record. OnDisplayAt is null for items not currently
// on display.
type Item struct {
	ID               string      `json:"id" gorm:"primaryKey;type:text"`
	Name             string      `json:"name" gorm:"type:text;not null;index"`
	Description      string      `json:"description" gorm:"type:text;not null"`
	Accession        *string     `json:"accession" gorm:"type:text;uniqueIndex"`
	CategoryID       int         `json:"categoryId" gorm:"not null;index"`
	Category         Category    `json:"category" gorm:"foreignKey:CategoryID"`
	CreationEarliest *int        `json:"creationEarliest" gorm:"index"`
	CreationLatest   *int        `json:"creationLatest" gorm:"index"`
	OnDisplayAt      *string     `json:"onDisplayAt" gorm:"type:text;index"`
	Facility         *Facility   `json:"facility" gorm:"foreignKey:OnDisplayAt"`
	CollectionsURL   *string     `json:"collectionsUrl" gorm:"type:text"`
	Images           []ItemImage `json:"images" gorm:"foreignKey:ItemID"`
	Makers           []ItemMaker `json:"makers" gorm:"foreignKey:ItemID"`
	People           []ItemAssoc `json:"people" gorm:"foreignKey:ItemID"`
	Places           []ItemPlace `json:"places" gorm:"foreignKey:ItemID"`
}

// ItemImage identity is the (item, path) pair. An item has at most one
// row with IsThumb set.
type ItemImage struct {
	ItemID          string `json:"itemId" gorm:"primaryKey;type:text"`
	ImagePublicPath string `json:"imagePublicPath" gorm:"primaryKey;type:text"`
	IsThumb         bool   `json:"isThumb" gorm:"not null;default:false;index"`
}

// ItemMaker links an item to a person who made it.
type ItemMaker struct {
	ItemID   string `json:"itemId" gorm:"primaryKey;type:text"`
	PersonID string `json:"personId" gorm:"primaryKey;type:text;index"`
	Person   Person `json:"person" gorm:"foreignKey:PersonID"`
}

// ItemAssoc links an item to an associated person (sitter, subject,
// previous owner). Distinct from the maker relation.
type ItemAssoc struct {
	ItemID   string `json:"itemId" gorm:"primaryKey;type:text"`
	PersonID string `json:"personId" gorm:"primaryKey;type:text;index"`
	Person   Person `json:"person" gorm:"foreignKey:PersonID"`
}

func (ItemAssoc) TableName() string {
	return "item_people"
}

// ItemPlace links an item to a provenance place.
type ItemPlace struct {
	ItemID  string `json:"itemId" gorm:"primaryKey;type:text"`
	PlaceID string `json:"placeId" gorm:"primaryKey;type:text;index"`
	Place   Place  `json:"place" gorm:"foreignKey:PlaceID"`
}
