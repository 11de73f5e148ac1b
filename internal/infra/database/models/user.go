package models

type User struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName     string `json:"firstName" gorm:"type:text;not null"`
	LastName      string `json:"lastName" gorm:"type:text;not null"`
	Email         string `json:"email" gorm:"type:text;not null;uniqueIndex"`
	Password      []byte `json:"-" gorm:"type:bytea"`
	Administrator bool   `json:"administrator" gorm:"not null;default:false"`
}

// UserItemFavourite is unique per (user, item) pair.
type UserItemFavourite struct {
	UserID int64  `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	ItemID string `json:"itemId" gorm:"primaryKey;type:text"`
	Item   Item   `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE;"`
}

// UserPersonFavourite is unique per (user, person) pair.
type UserPersonFavourite struct {
	UserID   int64  `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	PersonID string `json:"personId" gorm:"primaryKey;type:text"`
	Person   Person `json:"-" gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE;"`
}
