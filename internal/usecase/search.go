package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

// SearchInput carries raw facet and pagination parameters as received on
// the wire; validation happens in the domain builders.
type SearchInput struct {
	Facets     domain.FacetInput
	Sort       string
	PageNumber string
	PageSize   string
}

// SearchResult is one page of matching items plus the total count of the
// filtered set ignoring the window.
type SearchResult struct {
	Items []domain.ItemSummary
	Total int64
	Page  domain.Page
}

type SearchUsecase struct {
	catalog CatalogRepository
}

func NewSearchUsecase(catalog CatalogRepository) *SearchUsecase {
	return &SearchUsecase{catalog: catalog}
}

func (uc *SearchUsecase) Search(ctx context.Context, input SearchInput) (SearchResult, error) {
	filter, err := domain.BuildFilter(input.Facets)
	if err != nil {
		return SearchResult{}, err
	}

	page, err := domain.ParsePage(input.PageNumber, input.PageSize)
	if err != nil {
		return SearchResult{}, err
	}

	order := domain.SortKeys(input.Sort)

	items, total, err := uc.catalog.Search(ctx, filter, order, page)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{Items: items, Total: total, Page: page}, nil
}
