package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

type PersonUsecase struct {
	catalog CatalogRepository
}

func NewPersonUsecase(catalog CatalogRepository) *PersonUsecase {
	return &PersonUsecase{catalog: catalog}
}

// Get looks up a person and computes the items they are linked to, maker
// links first. A person with no linked items yields an empty related set.
func (uc *PersonUsecase) Get(ctx context.Context, id string) (domain.Person, []domain.ItemSummary, error) {
	person, err := uc.catalog.GetPerson(ctx, id)
	if err != nil {
		return domain.Person{}, nil, err
	}

	related, err := relatedItems(ctx, uc.catalog, domain.PersonOverlaps(person.ID), "")
	if err != nil {
		return domain.Person{}, nil, err
	}

	return person, related, nil
}
