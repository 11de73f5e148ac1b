package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/infra/database/models"
)

// FavouriteRepository persists user favourites. Creation relies on the
// composite primary keys: a duplicate pair surfaces as a conflict, a
// dangling target as not-found.
type FavouriteRepository struct {
	db *gorm.DB
}

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

func (r *FavouriteRepository) CreateItemFavourite(ctx context.Context, userID int64, itemID string) (domain.ItemFavourite, error) {
	row := models.UserItemFavourite{UserID: userID, ItemID: itemID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ItemFavourite{}, domain.ConflictError{Resource: "favourite"}
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ItemFavourite{}, domain.NotFoundError{Resource: "item"}
		}
		return domain.ItemFavourite{}, err
	}

	var item models.Item
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id = ?", itemID).Take(&item).Error; err != nil {
		return domain.ItemFavourite{}, err
	}

	return domain.ItemFavourite{UserID: userID, ItemID: itemID, ItemName: item.Name}, nil
}

func (r *FavouriteRepository) ListItemFavourites(ctx context.Context, userID int64, itemID string) ([]domain.ItemFavourite, error) {
	q := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID)
	if itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}

	var rows []models.UserItemFavourite
	if err := q.Order("item_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	favourites := make([]domain.ItemFavourite, 0, len(rows))
	for _, row := range rows {
		favourites = append(favourites, domain.ItemFavourite{
			UserID:   row.UserID,
			ItemID:   row.ItemID,
			ItemName: row.Item.Name,
		})
	}
	return favourites, nil
}

func (r *FavouriteRepository) DeleteItemFavourite(ctx context.Context, userID int64, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.UserItemFavourite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "favourite"}
	}
	return nil
}

func (r *FavouriteRepository) CreatePersonFavourite(ctx context.Context, userID int64, personID string) (domain.PersonFavourite, error) {
	row := models.UserPersonFavourite{UserID: userID, PersonID: personID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.PersonFavourite{}, domain.ConflictError{Resource: "favourite"}
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.PersonFavourite{}, domain.NotFoundError{Resource: "person"}
		}
		return domain.PersonFavourite{}, err
	}

	var person models.Person
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id = ?", personID).Take(&person).Error; err != nil {
		return domain.PersonFavourite{}, err
	}

	favourite := domain.PersonFavourite{UserID: userID, PersonID: personID}
	if person.Name != nil {
		favourite.PersonName = *person.Name
	}
	return favourite, nil
}

func (r *FavouriteRepository) ListPersonFavourites(ctx context.Context, userID int64, personID string) ([]domain.PersonFavourite, error) {
	q := r.db.WithContext(ctx).
		Preload("Person").
		Where("user_id = ?", userID)
	if personID != "" {
		q = q.Where("person_id = ?", personID)
	}

	var rows []models.UserPersonFavourite
	if err := q.Order("person_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	favourites := make([]domain.PersonFavourite, 0, len(rows))
	for _, row := range rows {
		favourite := domain.PersonFavourite{
			UserID:   row.UserID,
			PersonID: row.PersonID,
		}
		if row.Person.Name != nil {
			favourite.PersonName = *row.Person.Name
		}
		favourites = append(favourites, favourite)
	}
	return favourites, nil
}

func (r *FavouriteRepository) DeletePersonFavourite(ctx context.Context, userID int64, personID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND person_id = ?", userID, personID).
		Delete(&models.UserPersonFavourite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "favourite"}
	}
	return nil
}
