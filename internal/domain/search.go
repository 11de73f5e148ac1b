package domain

import "strconv"

// FacetInput carries the raw, optional search facets as received on the
// wire. Multi-valued facets are normalized to slices by the transport
// layer; validation and typing happen in BuildFilter.
type FacetInput struct {
	Query            string
	Image            []string
	Category         []string
	Maker            []string
	Place            []string
	Facility         []string
	CreationEarliest string
	CreationLatest   string
}

// Op is a predicate comparison operator.
type Op int

const (
	OpContains Op = iota // case-insensitive substring
	OpEqual
	OpGTE
	OpLTE
	OpNull
	OpNotNull
)

// Join names a relation the datastore must bring into scope for a filter
// to be evaluable. Maker and place joins are restricting; the image join
// is an outer join so that absence remains a matchable state.
type Join int

const (
	JoinMakers Join = iota
	JoinPlaces
	JoinImages
)

// Qualified column names used by filter conditions and order keys.
const (
	ColName             = "items.name"
	ColDescription      = "items.description"
	ColCategoryID       = "items.category_id"
	ColOnDisplayAt      = "items.on_display_at"
	ColCreationEarliest = "items.creation_earliest"
	ColCreationLatest   = "items.creation_latest"
	ColMakerPersonID    = "item_makers.person_id"
	ColPlacePlaceID     = "item_places.place_id"
	ColImageItemID      = "item_images.item_id"
)

// Condition is a single comparison. Value is unused for null checks.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Group is a disjunction of conditions. A present facet contributes
// exactly one group.
type Group struct {
	Conditions []Condition
}

// Filter is the conjunction of facet groups plus the joins the groups
// reference. Absent facets contribute nothing.
type Filter struct {
	Groups []Group
	Joins  []Join
}

func (f *Filter) addJoin(j Join) {
	for _, have := range f.Joins {
		if have == j {
			return
		}
	}
	f.Joins = append(f.Joins, j)
}

// One builder per facet, applied in a fixed order. Each builder appends at
// most one group.
var facetBuilders = []func(FacetInput, *Filter) error{
	buildKeyword,
	buildImage,
	buildCategory,
	buildMaker,
	buildPlace,
	buildFacility,
	buildCreationEarliest,
	buildCreationLatest,
}

// BuildFilter maps raw facet inputs to a normalized filter expression.
// Malformed facet values yield a ValidationError naming the parameter.
func BuildFilter(in FacetInput) (Filter, error) {
	var f Filter
	for _, build := range facetBuilders {
		if err := build(in, &f); err != nil {
			return Filter{}, err
		}
	}
	return f, nil
}

func buildKeyword(in FacetInput, f *Filter) error {
	if in.Query == "" {
		return nil
	}
	f.Groups = append(f.Groups, Group{Conditions: []Condition{
		{Column: ColName, Op: OpContains, Value: in.Query},
		{Column: ColDescription, Op: OpContains, Value: in.Query},
	}})
	return nil
}

func buildImage(in FacetInput, f *Filter) error {
	if len(in.Image) == 0 {
		return nil
	}
	var group Group
	for _, flag := range in.Image {
		switch flag {
		case "0":
			group.Conditions = append(group.Conditions, Condition{Column: ColImageItemID, Op: OpNull})
		case "1":
			group.Conditions = append(group.Conditions, Condition{Column: ColImageItemID, Op: OpNotNull})
		default:
			return ValidationError{Param: "image", Detail: "must be 0 or 1"}
		}
	}
	f.addJoin(JoinImages)
	f.Groups = append(f.Groups, group)
	return nil
}

func buildCategory(in FacetInput, f *Filter) error {
	if len(in.Category) == 0 {
		return nil
	}
	var group Group
	for _, raw := range in.Category {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return ValidationError{Param: "category", Detail: "must be an integer id"}
		}
		group.Conditions = append(group.Conditions, Condition{Column: ColCategoryID, Op: OpEqual, Value: id})
	}
	f.Groups = append(f.Groups, group)
	return nil
}

func buildMaker(in FacetInput, f *Filter) error {
	if len(in.Maker) == 0 {
		return nil
	}
	var group Group
	for _, id := range in.Maker {
		group.Conditions = append(group.Conditions, Condition{Column: ColMakerPersonID, Op: OpEqual, Value: id})
	}
	f.addJoin(JoinMakers)
	f.Groups = append(f.Groups, group)
	return nil
}

func buildPlace(in FacetInput, f *Filter) error {
	if len(in.Place) == 0 {
		return nil
	}
	var group Group
	for _, id := range in.Place {
		group.Conditions = append(group.Conditions, Condition{Column: ColPlacePlaceID, Op: OpEqual, Value: id})
	}
	f.addJoin(JoinPlaces)
	f.Groups = append(f.Groups, group)
	return nil
}

func buildFacility(in FacetInput, f *Filter) error {
	if len(in.Facility) == 0 {
		return nil
	}
	var group Group
	for _, id := range in.Facility {
		// "0" is the sentinel for items not on display anywhere.
		if id == "0" {
			group.Conditions = append(group.Conditions, Condition{Column: ColOnDisplayAt, Op: OpNull})
		} else {
			group.Conditions = append(group.Conditions, Condition{Column: ColOnDisplayAt, Op: OpEqual, Value: id})
		}
	}
	f.Groups = append(f.Groups, group)
	return nil
}

func buildCreationEarliest(in FacetInput, f *Filter) error {
	if in.CreationEarliest == "" {
		return nil
	}
	year, err := strconv.Atoi(in.CreationEarliest)
	if err != nil {
		return ValidationError{Param: "creationEarliest", Detail: "must be an integer year"}
	}
	f.Groups = append(f.Groups, Group{Conditions: []Condition{
		{Column: ColCreationEarliest, Op: OpGTE, Value: year},
	}})
	return nil
}

func buildCreationLatest(in FacetInput, f *Filter) error {
	if in.CreationLatest == "" {
		return nil
	}
	year, err := strconv.Atoi(in.CreationLatest)
	if err != nil {
		return ValidationError{Param: "creationLatest", Detail: "must be an integer year"}
	}
	f.Groups = append(f.Groups, Group{Conditions: []Condition{
		{Column: ColCreationLatest, Op: OpLTE, Value: year},
	}})
	return nil
}

// OrderKey is one sort tie-break key.
type OrderKey struct {
	Column string
	Desc   bool
}

var sortTable = map[string][]OrderKey{
	"1": {{Column: ColName}},
	"2": {{Column: ColName, Desc: true}},
	"3": {{Column: ColCreationEarliest}, {Column: ColCreationLatest}},
	"4": {{Column: ColCreationEarliest, Desc: true}, {Column: ColCreationLatest, Desc: true}},
}

// SortKeys resolves a sort code to ordered tie-break keys. Unknown or
// absent codes resolve to nil and leave ordering to the datastore.
func SortKeys(code string) []OrderKey {
	return sortTable[code]
}

// Page is a resolved pagination window.
type Page struct {
	Number int
	Size   int
}

// DefaultPageSize applies when page[size] is absent.
const DefaultPageSize = 10

// ParsePage resolves the raw page[number]/page[size] parameters, applying
// defaults for absent values.
func ParsePage(number, size string) (Page, error) {
	page := Page{Number: 0, Size: DefaultPageSize}
	if number != "" {
		n, err := strconv.Atoi(number)
		if err != nil || n < 0 {
			return Page{}, ValidationError{Param: "page[number]", Detail: "must be a non-negative integer"}
		}
		page.Number = n
	}
	if size != "" {
		s, err := strconv.Atoi(size)
		if err != nil || s < 1 {
			return Page{}, ValidationError{Param: "page[size]", Detail: "must be a positive integer"}
		}
		page.Size = s
	}
	return page, nil
}

// Offset is the row offset of the window.
func (p Page) Offset() int {
	return p.Number * p.Size
}
