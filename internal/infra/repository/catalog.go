package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/infra/database/models"
)

// CatalogRepository executes catalog queries against postgres. All
// operations here are read-only.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// joinSQL translates required joins. Maker and place joins restrict the
// row set; the image join is LEFT so the no-image flag can match on the
// null side.
var joinSQL = map[domain.Join]string{
	domain.JoinMakers: "JOIN item_makers ON item_makers.item_id = items.id",
	domain.JoinPlaces: "JOIN item_places ON item_places.item_id = items.id",
	domain.JoinImages: "LEFT JOIN item_images ON item_images.item_id = items.id AND item_images.is_thumb = false",
}

func conditionSQL(c domain.Condition) (string, []any) {
	switch c.Op {
	case domain.OpContains:
		return c.Column + " ILIKE ?", []any{"%" + fmt.Sprint(c.Value) + "%"}
	case domain.OpEqual:
		return c.Column + " = ?", []any{c.Value}
	case domain.OpGTE:
		return c.Column + " >= ?", []any{c.Value}
	case domain.OpLTE:
		return c.Column + " <= ?", []any{c.Value}
	case domain.OpNull:
		return c.Column + " IS NULL", nil
	case domain.OpNotNull:
		return c.Column + " IS NOT NULL", nil
	default:
		return "1 = 0", nil
	}
}

func applyFilter(q *gorm.DB, filter domain.Filter) *gorm.DB {
	for _, join := range filter.Joins {
		q = q.Joins(joinSQL[join])
	}
	for _, group := range filter.Groups {
		parts := make([]string, 0, len(group.Conditions))
		var args []any
		for _, cond := range group.Conditions {
			sql, condArgs := conditionSQL(cond)
			parts = append(parts, sql)
			args = append(args, condArgs...)
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
	return q
}

func applyOrder(q *gorm.DB, order []domain.OrderKey) *gorm.DB {
	for _, key := range order {
		dir := " ASC"
		if key.Desc {
			dir = " DESC"
		}
		q = q.Order(key.Column + dir)
	}
	return q
}

// Search runs one filtered, joined, ordered and windowed query over items
// plus a count of the filtered set ignoring the window. Rows are distinct
// on item id even when a join multiplies them.
func (r *CatalogRepository) Search(ctx context.Context, filter domain.Filter, order []domain.OrderKey, page domain.Page) ([]domain.ItemSummary, int64, error) {
	filtered := func() *gorm.DB {
		return applyFilter(r.db.WithContext(ctx).Model(&models.Item{}), filter)
	}

	var total int64
	if err := filtered().Distinct("items.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := applyOrder(filtered().Distinct("items.*"), order).
		Preload("Category").
		Preload("Images", "is_thumb = ?", true).
		Offset(page.Offset()).
		Limit(page.Size)

	var rows []models.Item
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toSummaries(rows), total, nil
}

// FindOverlap returns up to limit items sharing one attribute with an
// anchor, excluding excludeID when set. Results carry thumbnail and
// category.
func (r *CatalogRepository) FindOverlap(ctx context.Context, overlap domain.Overlap, excludeID string, limit int) ([]domain.ItemSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})

	switch overlap.Kind {
	case domain.OverlapMaker:
		q = q.Joins("JOIN item_makers ON item_makers.item_id = items.id").
			Where("item_makers.person_id = ?", overlap.Key)
	case domain.OverlapPerson:
		q = q.Joins("JOIN item_people ON item_people.item_id = items.id").
			Where("item_people.person_id = ?", overlap.Key)
	case domain.OverlapPlace:
		q = q.Joins("JOIN item_places ON item_places.item_id = items.id").
			Where("item_places.place_id = ?", overlap.Key)
	case domain.OverlapCategory:
		q = q.Where("items.category_id = ?", overlap.CategoryID)
	}

	if excludeID != "" {
		q = q.Where("items.id <> ?", excludeID)
	}

	var rows []models.Item
	err := q.Preload("Category").
		Preload("Images", "is_thumb = ?", true).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return toSummaries(rows), nil
}

// GetItem loads an item with its category, facility, ordered non-thumbnail
// images, and maker/person/place relations.
func (r *CatalogRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	var row models.Item
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Facility").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_thumb = ?", false).Order("image_public_path")
		}).
		Preload("Makers", func(db *gorm.DB) *gorm.DB {
			return db.Order("person_id")
		}).
		Preload("Makers.Person").
		Preload("People", func(db *gorm.DB) *gorm.DB {
			return db.Order("person_id")
		}).
		Preload("People.Person").
		Preload("Places", func(db *gorm.DB) *gorm.DB {
			return db.Order("place_id")
		}).
		Preload("Places.Place").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, domain.NotFoundError{Resource: "item"}
		}
		return domain.Item{}, err
	}

	return toItem(row), nil
}

func (r *CatalogRepository) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	var row models.Person
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Person{}, domain.NotFoundError{Resource: "person"}
		}
		return domain.Person{}, err
	}

	return toPerson(row), nil
}

// GetThumbnail returns the thumbnail image row for an item.
func (r *CatalogRepository) GetThumbnail(ctx context.Context, itemID string) (domain.Image, error) {
	var row models.ItemImage
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_thumb = ?", itemID, true).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Image{}, domain.NotFoundError{Resource: "thumbnail"}
		}
		return domain.Image{}, err
	}

	return toImage(row), nil
}

// GetImageByIndex returns the index-th non-thumbnail image of an item,
// 0-based, in the same path order GetItem materializes the image sequence.
func (r *CatalogRepository) GetImageByIndex(ctx context.Context, itemID string, index int) (domain.Image, error) {
	if index < 0 {
		return domain.Image{}, domain.NotFoundError{Resource: "image"}
	}

	var row models.ItemImage
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND is_thumb = ?", itemID, false).
		Order("image_public_path").
		Offset(index).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Image{}, domain.NotFoundError{Resource: "image"}
		}
		return domain.Image{}, err
	}

	return toImage(row), nil
}

// --- model to domain mapping ---

func toImage(row models.ItemImage) domain.Image {
	return domain.Image{
		ItemID:     row.ItemID,
		PublicPath: row.ImagePublicPath,
		IsThumb:    row.IsThumb,
	}
}

func toCategory(row models.Category) domain.Category {
	return domain.Category{ID: row.ID, Name: row.Name}
}

func toPerson(row models.Person) domain.Person {
	return domain.Person{
		ID:             row.ID,
		Name:           row.Name,
		BirthDate:      row.BirthDate,
		DeathDate:      row.DeathDate,
		Occupation:     row.Occupation,
		Nationality:    row.Nationality,
		Note:           row.Note,
		Description:    row.Description,
		CollectionsURL: row.CollectionsURL,
	}
}

func toSummaries(rows []models.Item) []domain.ItemSummary {
	summaries := make([]domain.ItemSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.ItemSummary{
			ID:               row.ID,
			Name:             row.Name,
			CreationEarliest: row.CreationEarliest,
			CreationLatest:   row.CreationLatest,
			OnDisplayAt:      row.OnDisplayAt,
			Category:         toCategory(row.Category),
		}
		if len(row.Images) > 0 {
			thumb := toImage(row.Images[0])
			summary.Thumbnail = &thumb
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func toItem(row models.Item) domain.Item {
	item := domain.Item{
		ID:               row.ID,
		Name:             row.Name,
		Description:      row.Description,
		Accession:        row.Accession,
		CategoryID:       row.CategoryID,
		Category:         toCategory(row.Category),
		CreationEarliest: row.CreationEarliest,
		CreationLatest:   row.CreationLatest,
		OnDisplayAt:      row.OnDisplayAt,
		CollectionsURL:   row.CollectionsURL,
	}
	if row.Facility != nil {
		item.Facility = &domain.Facility{ID: row.Facility.ID, Name: row.Facility.Name}
	}
	for _, image := range row.Images {
		item.Images = append(item.Images, toImage(image))
	}
	for _, maker := range row.Makers {
		item.Makers = append(item.Makers, domain.PersonRelation{
			PersonID: maker.PersonID,
			Person:   toPerson(maker.Person),
		})
	}
	for _, person := range row.People {
		item.People = append(item.People, domain.PersonRelation{
			PersonID: person.PersonID,
			Person:   toPerson(person.Person),
		})
	}
	for _, place := range row.Places {
		item.Places = append(item.Places, domain.PlaceRelation{
			PlaceID: place.PlaceID,
			Place:   domain.Place{ID: place.Place.ID, Name: place.Place.Name},
		})
	}
	return item
}
