package domain

import (
	"errors"
	"testing"
)

func TestBuildFilterEmptyInput(t *testing.T) {
	f, err := BuildFilter(FacetInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Groups) != 0 {
		t.Fatalf("absent facets must contribute no groups, got %d", len(f.Groups))
	}
	if len(f.Joins) != 0 {
		t.Fatalf("absent facets must require no joins, got %v", f.Joins)
	}
}

func TestBuildFilterKeyword(t *testing.T) {
	f, err := BuildFilter(FacetInput{Query: "kete"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(f.Groups))
	}
	group := f.Groups[0]
	if len(group.Conditions) != 2 {
		t.Fatalf("keyword group must match name or description, got %d conditions", len(group.Conditions))
	}
	if group.Conditions[0].Column != ColName || group.Conditions[0].Op != OpContains {
		t.Fatalf("unexpected first condition: %+v", group.Conditions[0])
	}
	if group.Conditions[1].Column != ColDescription {
		t.Fatalf("unexpected second condition: %+v", group.Conditions[1])
	}
}

func TestBuildFilterCategory(t *testing.T) {
	f, err := BuildFilter(FacetInput{Category: []string{"3", "5"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(f.Groups))
	}
	conds := f.Groups[0].Conditions
	if len(conds) != 2 {
		t.Fatalf("expected two OR'd conditions, got %d", len(conds))
	}
	if conds[0].Value != 3 || conds[1].Value != 5 {
		t.Fatalf("category ids not parsed: %+v", conds)
	}
	if len(f.Joins) != 0 {
		t.Fatalf("category facet needs no join, got %v", f.Joins)
	}
}

func TestBuildFilterCategoryMalformed(t *testing.T) {
	_, err := BuildFilter(FacetInput{Category: []string{"pots"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Param != "category" {
		t.Fatalf("validation error must name the parameter, got %+v", err)
	}
}

func TestBuildFilterMakerRequiresJoin(t *testing.T) {
	f, err := BuildFilter(FacetInput{Maker: []string{"p1", "p2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Joins) != 1 || f.Joins[0] != JoinMakers {
		t.Fatalf("maker facet must require the makers join, got %v", f.Joins)
	}
	conds := f.Groups[0].Conditions
	if conds[0].Column != ColMakerPersonID || conds[1].Value != "p2" {
		t.Fatalf("unexpected maker conditions: %+v", conds)
	}
}

func TestBuildFilterPlaceRequiresJoin(t *testing.T) {
	f, err := BuildFilter(FacetInput{Place: []string{"pl9"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Joins) != 1 || f.Joins[0] != JoinPlaces {
		t.Fatalf("place facet must require the places join, got %v", f.Joins)
	}
}

func TestBuildFilterImageFlags(t *testing.T) {
	f, err := BuildFilter(FacetInput{Image: []string{"1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Joins) != 1 || f.Joins[0] != JoinImages {
		t.Fatalf("image facet must require the outer image join, got %v", f.Joins)
	}
	if f.Groups[0].Conditions[0].Op != OpNotNull {
		t.Fatalf("has-image flag must be a not-null check: %+v", f.Groups[0].Conditions[0])
	}

	// Both flags together are a no-op group: null OR not-null matches all.
	f, err = BuildFilter(FacetInput{Image: []string{"0", "1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conds := f.Groups[0].Conditions
	if len(conds) != 2 || conds[0].Op != OpNull || conds[1].Op != OpNotNull {
		t.Fatalf("expected null OR not-null, got %+v", conds)
	}
}

func TestBuildFilterImageMalformed(t *testing.T) {
	_, err := BuildFilter(FacetInput{Image: []string{"2"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildFilterFacilitySentinel(t *testing.T) {
	f, err := BuildFilter(FacetInput{Facility: []string{"0", "f2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	conds := f.Groups[0].Conditions
	if conds[0].Op != OpNull {
		t.Fatalf("facility sentinel 0 must map to a null check: %+v", conds[0])
	}
	if conds[1].Op != OpEqual || conds[1].Value != "f2" {
		t.Fatalf("unexpected facility condition: %+v", conds[1])
	}
}

func TestBuildFilterCreationRange(t *testing.T) {
	f, err := BuildFilter(FacetInput{CreationEarliest: "1850", CreationLatest: "1900"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Groups) != 2 {
		t.Fatalf("each bound contributes its own group, got %d", len(f.Groups))
	}
	if f.Groups[0].Conditions[0].Op != OpGTE || f.Groups[0].Conditions[0].Value != 1850 {
		t.Fatalf("unexpected earliest condition: %+v", f.Groups[0].Conditions[0])
	}
	if f.Groups[1].Conditions[0].Op != OpLTE || f.Groups[1].Conditions[0].Value != 1900 {
		t.Fatalf("unexpected latest condition: %+v", f.Groups[1].Conditions[0])
	}

	if _, err := BuildFilter(FacetInput{CreationEarliest: "old"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildFilterCombinesFacetsWithAnd(t *testing.T) {
	f, err := BuildFilter(FacetInput{
		Query:    "waka",
		Category: []string{"2"},
		Maker:    []string{"p1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Groups) != 3 {
		t.Fatalf("each present facet contributes exactly one group, got %d", len(f.Groups))
	}
}

func TestSortKeys(t *testing.T) {
	cases := []struct {
		code string
		want []OrderKey
	}{
		{"1", []OrderKey{{Column: ColName}}},
		{"2", []OrderKey{{Column: ColName, Desc: true}}},
		{"3", []OrderKey{{Column: ColCreationEarliest}, {Column: ColCreationLatest}}},
		{"4", []OrderKey{{Column: ColCreationEarliest, Desc: true}, {Column: ColCreationLatest, Desc: true}}},
		{"", nil},
		{"9", nil},
	}
	for _, tc := range cases {
		got := SortKeys(tc.code)
		if len(got) != len(tc.want) {
			t.Fatalf("code %q: expected %d keys, got %d", tc.code, len(tc.want), len(got))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("code %q key %d: expected %+v, got %+v", tc.code, i, tc.want[i], got[i])
			}
		}
	}
}

func TestParsePageDefaults(t *testing.T) {
	page, err := ParsePage("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Number != 0 || page.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", page)
	}
	if page.Offset() != 0 {
		t.Fatalf("unexpected offset: %d", page.Offset())
	}
}

func TestParsePageOffset(t *testing.T) {
	page, err := ParsePage("3", "25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Offset() != 75 {
		t.Fatalf("expected offset 75, got %d", page.Offset())
	}
}

func TestParsePageMalformed(t *testing.T) {
	if _, err := ParsePage("x", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParsePage("", "-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
