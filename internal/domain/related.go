package domain

// RelatedLimit caps both each overlap query and the merged result.
const RelatedLimit = 4

// OverlapKind selects which shared attribute an overlap query matches on.
type OverlapKind int

const (
	OverlapMaker OverlapKind = iota
	OverlapPerson
	OverlapPlace
	OverlapCategory
)

// Overlap describes one attribute-overlap query against the catalog: find
// items sharing the given attribute value. Key holds the person or place
// id; CategoryID is set for OverlapCategory.
type Overlap struct {
	Kind       OverlapKind
	Key        string
	CategoryID int
}

// ItemOverlaps plans the overlap queries for an item anchor: one per maker
// relation, one per associated-person relation, one per place relation,
// then a single category fallback. The order here fixes the merge order.
func ItemOverlaps(item Item) []Overlap {
	overlaps := make([]Overlap, 0, len(item.Makers)+len(item.People)+len(item.Places)+1)
	for _, maker := range item.Makers {
		overlaps = append(overlaps, Overlap{Kind: OverlapMaker, Key: maker.PersonID})
	}
	for _, person := range item.People {
		overlaps = append(overlaps, Overlap{Kind: OverlapPerson, Key: person.PersonID})
	}
	for _, place := range item.Places {
		overlaps = append(overlaps, Overlap{Kind: OverlapPlace, Key: place.PlaceID})
	}
	overlaps = append(overlaps, Overlap{Kind: OverlapCategory, CategoryID: item.CategoryID})
	return overlaps
}

// PersonOverlaps plans the overlap queries for a person anchor: items the
// person made, then items the person is associated with.
func PersonOverlaps(personID string) []Overlap {
	return []Overlap{
		{Kind: OverlapMaker, Key: personID},
		{Kind: OverlapPerson, Key: personID},
	}
}

// MergeRelated concatenates the completed overlap result sets in plan
// order, drops duplicate item ids keeping the first occurrence, and
// truncates to limit. Pure; deterministic for a given input order.
func MergeRelated(results [][]ItemSummary, limit int) []ItemSummary {
	merged := make([]ItemSummary, 0, limit)
	seen := make(map[string]struct{})
	for _, set := range results {
		for _, item := range set {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			merged = append(merged, item)
			if len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
