package presenter

import (
	"fmt"
	"strconv"

	"github.com/openmuseum/collections/internal/domain"
)

// imageRef builds the positional image reference "{itemId}/{index}". On
// detail documents index is the position within the item's non-thumbnail
// image sequence in retrieval order.
func imageRef(itemID string, index int) string {
	return fmt.Sprintf("%s/%d", itemID, index)
}

func imageResource(ref string, image domain.Image) Resource {
	return Resource{
		Type: "image",
		ID:   ref,
		Attributes: map[string]any{
			"imagePublicPath": image.PublicPath,
			"isThumb":         image.IsThumb,
		},
	}
}

func categoryResource(category domain.Category) Resource {
	return Resource{
		Type:       "category",
		ID:         strconv.Itoa(category.ID),
		Attributes: map[string]any{"name": category.Name},
	}
}

func personResource(person domain.Person) Resource {
	return Resource{
		Type: "person",
		ID:   person.ID,
		Attributes: map[string]any{
			"name":           person.Name,
			"birthDate":      person.BirthDate,
			"deathDate":      person.DeathDate,
			"occupation":     person.Occupation,
			"nationality":    person.Nationality,
			"note":           person.Note,
			"description":    person.Description,
			"collectionsUrl": person.CollectionsURL,
		},
	}
}

// summaryResource shapes one list entry. The thumbnail, when present, is
// referenced as "{itemId}/0" with its isThumb attribute carried on the
// included image resource.
func summaryResource(item domain.ItemSummary) (Resource, []Resource) {
	resource := Resource{
		Type: "item",
		ID:   item.ID,
		Attributes: map[string]any{
			"name":             item.Name,
			"creationEarliest": item.CreationEarliest,
			"creationLatest":   item.CreationLatest,
			"onDisplayAt":      item.OnDisplayAt,
		},
		Relationships: map[string]Relationship{
			"category": {Data: Ref{Type: "category", ID: strconv.Itoa(item.Category.ID)}},
		},
	}

	included := []Resource{categoryResource(item.Category)}

	imageRefs := []Ref{}
	if item.Thumbnail != nil {
		ref := imageRef(item.ID, 0)
		imageRefs = append(imageRefs, Ref{Type: "image", ID: ref})
		included = append(included, imageResource(ref, *item.Thumbnail))
	}
	resource.Relationships["images"] = Relationship{Data: imageRefs}

	return resource, included
}

// ItemListDocument shapes search results and related-item lists.
func ItemListDocument(items []domain.ItemSummary) Document {
	resources := make([]Resource, 0, len(items))
	var included []Resource
	seen := make(map[string]struct{})

	for _, item := range items {
		resource, extra := summaryResource(item)
		resources = append(resources, resource)
		for _, inc := range extra {
			key := inc.Type + ":" + inc.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			included = append(included, inc)
		}
	}

	return Document{Data: resources, Included: included}
}

// SearchDocument is a list document carrying the total count of the
// filtered set regardless of the pagination window.
func SearchDocument(items []domain.ItemSummary, total int64) Document {
	doc := ItemListDocument(items)
	doc.Meta = map[string]any{"count": total}
	return doc
}

// ItemDocument shapes an item detail response with its related items in
// meta.relatedObjects.
func ItemDocument(item domain.Item, related []domain.ItemSummary) Document {
	resource := Resource{
		Type: "item",
		ID:   item.ID,
		Attributes: map[string]any{
			"name":             item.Name,
			"description":      item.Description,
			"accession":        item.Accession,
			"creationEarliest": item.CreationEarliest,
			"creationLatest":   item.CreationLatest,
			"collectionsUrl":   item.CollectionsURL,
		},
		Relationships: map[string]Relationship{},
	}

	var included []Resource
	seen := make(map[string]struct{})
	include := func(r Resource) {
		key := r.Type + ":" + r.ID
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		included = append(included, r)
	}

	imageRefs := make([]Ref, 0, len(item.Images))
	for i, image := range item.Images {
		ref := imageRef(item.ID, i)
		imageRefs = append(imageRefs, Ref{Type: "image", ID: ref})
		include(imageResource(ref, image))
	}
	resource.Relationships["images"] = Relationship{Data: imageRefs}

	makerRefs := make([]Ref, 0, len(item.Makers))
	for _, maker := range item.Makers {
		makerRefs = append(makerRefs, Ref{Type: "person", ID: maker.PersonID})
		include(personResource(maker.Person))
	}
	resource.Relationships["makers"] = Relationship{Data: makerRefs}

	peopleRefs := make([]Ref, 0, len(item.People))
	for _, person := range item.People {
		peopleRefs = append(peopleRefs, Ref{Type: "person", ID: person.PersonID})
		include(personResource(person.Person))
	}
	resource.Relationships["people"] = Relationship{Data: peopleRefs}

	placeRefs := make([]Ref, 0, len(item.Places))
	for _, place := range item.Places {
		placeRefs = append(placeRefs, Ref{Type: "place", ID: place.PlaceID})
		include(Resource{
			Type:       "place",
			ID:         place.Place.ID,
			Attributes: map[string]any{"name": place.Place.Name},
		})
	}
	resource.Relationships["places"] = Relationship{Data: placeRefs}

	resource.Relationships["category"] = Relationship{Data: Ref{Type: "category", ID: strconv.Itoa(item.Category.ID)}}
	include(categoryResource(item.Category))

	if item.Facility != nil {
		resource.Relationships["facility"] = Relationship{Data: Ref{Type: "facility", ID: item.Facility.ID}}
		include(Resource{
			Type:       "facility",
			ID:         item.Facility.ID,
			Attributes: map[string]any{"name": item.Facility.Name},
		})
	}

	return Document{
		Data:     resource,
		Included: included,
		Meta:     map[string]any{"relatedObjects": ItemListDocument(related)},
	}
}

// PersonDocument shapes a person detail response with the items they are
// linked to in meta.relatedObjects.
func PersonDocument(person domain.Person, related []domain.ItemSummary) Document {
	return Document{
		Data: personResource(person),
		Meta: map[string]any{"relatedObjects": ItemListDocument(related)},
	}
}

// UserDocument shapes an account profile.
func UserDocument(user domain.User) Document {
	return Document{
		Data: Resource{
			Type: "user",
			ID:   strconv.FormatInt(user.ID, 10),
			Attributes: map[string]any{
				"firstName":     user.FirstName,
				"lastName":      user.LastName,
				"email":         user.Email,
				"administrator": user.Administrator,
			},
		},
	}
}

func itemFavouriteResource(favourite domain.ItemFavourite) Resource {
	return Resource{
		Type: "favouriteItem",
		ID:   fmt.Sprintf("%d/%s", favourite.UserID, favourite.ItemID),
		Attributes: map[string]any{
			"userId":   favourite.UserID,
			"itemId":   favourite.ItemID,
			"itemName": favourite.ItemName,
		},
	}
}

func personFavouriteResource(favourite domain.PersonFavourite) Resource {
	return Resource{
		Type: "favouritePerson",
		ID:   fmt.Sprintf("%d/%s", favourite.UserID, favourite.PersonID),
		Attributes: map[string]any{
			"userId":     favourite.UserID,
			"personId":   favourite.PersonID,
			"personName": favourite.PersonName,
		},
	}
}

func ItemFavouriteDocument(favourite domain.ItemFavourite) Document {
	return Document{Data: itemFavouriteResource(favourite)}
}

func ItemFavouriteListDocument(favourites []domain.ItemFavourite) Document {
	resources := make([]Resource, 0, len(favourites))
	for _, favourite := range favourites {
		resources = append(resources, itemFavouriteResource(favourite))
	}
	return Document{Data: resources}
}

func PersonFavouriteDocument(favourite domain.PersonFavourite) Document {
	return Document{Data: personFavouriteResource(favourite)}
}

func PersonFavouriteListDocument(favourites []domain.PersonFavourite) Document {
	resources := make([]Resource, 0, len(favourites))
	for _, favourite := range favourites {
		resources = append(resources, personFavouriteResource(favourite))
	}
	return Document{Data: resources}
}
