package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/openmuseum/collections/internal/domain"
)

// relatedItems issues the planned overlap queries concurrently, waits for
// all of them, and merges the completed result sets. Sub-queries are
// independent so they run without ordering between them; the merge is
// pure and happens only after every query has finished. Any failed
// sub-query fails the whole computation.
func relatedItems(ctx context.Context, catalog CatalogRepository, overlaps []domain.Overlap, excludeID string) ([]domain.ItemSummary, error) {
	results := make([][]domain.ItemSummary, len(overlaps))

	g, ctx := errgroup.WithContext(ctx)
	for i, overlap := range overlaps {
		i, overlap := i, overlap
		g.Go(func() error {
			set, err := catalog.FindOverlap(ctx, overlap, excludeID, domain.RelatedLimit)
			if err != nil {
				return err
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.MergeRelated(results, domain.RelatedLimit), nil
}
