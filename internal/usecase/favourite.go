package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

type FavouriteUsecase struct {
	favourites FavouriteRepository
}

func NewFavouriteUsecase(favourites FavouriteRepository) *FavouriteUsecase {
	return &FavouriteUsecase{favourites: favourites}
}

// FavouriteItem records an item favourite for the user. A duplicate pair
// surfaces as ConflictError, an unknown item as NotFoundError.
func (uc *FavouriteUsecase) FavouriteItem(ctx context.Context, userID int64, itemID string) (domain.ItemFavourite, error) {
	return uc.favourites.CreateItemFavourite(ctx, userID, itemID)
}

func (uc *FavouriteUsecase) ListItemFavourites(ctx context.Context, userID int64, itemID string) ([]domain.ItemFavourite, error) {
	return uc.favourites.ListItemFavourites(ctx, userID, itemID)
}

func (uc *FavouriteUsecase) UnfavouriteItem(ctx context.Context, userID int64, itemID string) error {
	return uc.favourites.DeleteItemFavourite(ctx, userID, itemID)
}

func (uc *FavouriteUsecase) FavouritePerson(ctx context.Context, userID int64, personID string) (domain.PersonFavourite, error) {
	return uc.favourites.CreatePersonFavourite(ctx, userID, personID)
}

func (uc *FavouriteUsecase) ListPersonFavourites(ctx context.Context, userID int64, personID string) ([]domain.PersonFavourite, error) {
	return uc.favourites.ListPersonFavourites(ctx, userID, personID)
}

func (uc *FavouriteUsecase) UnfavouritePerson(ctx context.Context, userID int64, personID string) error {
	return uc.favourites.DeletePersonFavourite(ctx, userID, personID)
}
