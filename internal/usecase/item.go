package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

type ItemUsecase struct {
	catalog CatalogRepository
}

func NewItemUsecase(catalog CatalogRepository) *ItemUsecase {
	return &ItemUsecase{catalog: catalog}
}

// Get looks up an item and computes its related items. An unknown id
// returns NotFoundError before any overlap query is issued.
func (uc *ItemUsecase) Get(ctx context.Context, id string) (domain.Item, []domain.ItemSummary, error) {
	item, err := uc.catalog.GetItem(ctx, id)
	if err != nil {
		return domain.Item{}, nil, err
	}

	related, err := relatedItems(ctx, uc.catalog, domain.ItemOverlaps(item), item.ID)
	if err != nil {
		return domain.Item{}, nil, err
	}

	return item, related, nil
}
