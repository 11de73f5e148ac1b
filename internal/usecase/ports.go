package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

// CatalogRepository defines read access to the catalog store.
type CatalogRepository interface {
	Search(ctx context.Context, filter domain.Filter, order []domain.OrderKey, page domain.Page) ([]domain.ItemSummary, int64, error)
	FindOverlap(ctx context.Context, overlap domain.Overlap, excludeID string, limit int) ([]domain.ItemSummary, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	GetPerson(ctx context.Context, id string) (domain.Person, error)
	GetThumbnail(ctx context.Context, itemID string) (domain.Image, error)
	GetImageByIndex(ctx context.Context, itemID string, index int) (domain.Image, error)
}

// FavouriteRepository defines persistence for user favourites.
type FavouriteRepository interface {
	CreateItemFavourite(ctx context.Context, userID int64, itemID string) (domain.ItemFavourite, error)
	ListItemFavourites(ctx context.Context, userID int64, itemID string) ([]domain.ItemFavourite, error)
	DeleteItemFavourite(ctx context.Context, userID int64, itemID string) error
	CreatePersonFavourite(ctx context.Context, userID int64, personID string) (domain.PersonFavourite, error)
	ListPersonFavourites(ctx context.Context, userID int64, personID string) ([]domain.PersonFavourite, error)
	DeletePersonFavourite(ctx context.Context, userID int64, personID string) error
}

// UserRepository defines persistence/lookup for accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// ImageGateway encapsulates upstream image retrieval.
type ImageGateway interface {
	Fetch(ctx context.Context, publicPath string) ([]byte, string, error)
}
