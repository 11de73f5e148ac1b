package usecase

import (
	"context"
)

type ImageUsecase struct {
	catalog CatalogRepository
	images  ImageGateway
}

func NewImageUsecase(catalog CatalogRepository, images ImageGateway) *ImageUsecase {
	return &ImageUsecase{catalog: catalog, images: images}
}

// Thumbnail resolves the item's thumbnail row and fetches its bytes from
// the upstream host. Returns data, content type.
func (uc *ImageUsecase) Thumbnail(ctx context.Context, itemID string) ([]byte, string, error) {
	image, err := uc.catalog.GetThumbnail(ctx, itemID)
	if err != nil {
		return nil, "", err
	}
	return uc.images.Fetch(ctx, image.PublicPath)
}

// ByIndex resolves the index-th non-thumbnail image of the item and
// fetches its bytes.
func (uc *ImageUsecase) ByIndex(ctx context.Context, itemID string, index int) ([]byte, string, error) {
	image, err := uc.catalog.GetImageByIndex(ctx, itemID, index)
	if err != nil {
		return nil, "", err
	}
	return uc.images.Fetch(ctx, image.PublicPath)
}
