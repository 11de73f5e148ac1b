package domain

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the persistence boundary.
type User struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Administrator bool   `json:"administrator"`
	PasswordHash  []byte `json:"-"`
}

// ItemFavourite links a user to a catalog item. The (UserID, ItemID) pair
// is unique.
type ItemFavourite struct {
	UserID   int64  `json:"userId"`
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
}

// PersonFavourite links a user to a person. The (UserID, PersonID) pair
// is unique.
type PersonFavourite struct {
	UserID     int64  `json:"userId"`
	PersonID   string `json:"personId"`
	PersonName string `json:"personName"`
}
