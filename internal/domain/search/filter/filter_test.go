package filter

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
)

func boolPtr(b bool) *bool { return &b }

func ids(ls []listing.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestApply_EmptyCriteriaReturnsAll(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Availability: "available"},
		{ID: "b", Availability: "sold"},
		{ID: "c"},
	}
	got := Apply(ls, Criteria{})
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Errorf("expected all listings, got %v", ids(got))
	}
}

func TestApply_DropsRecordsWithoutID(t *testing.T) {
	ls := []listing.Listing{{ID: "a"}, {Title: "orphan"}, {ID: "b"}}
	got := Apply(ls, Criteria{})
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	ls := []listing.Listing{{ID: "a", Price: listing.NumberOf(1)}, {ID: "b", Price: listing.NumberOf(5)}}
	before := ids(ls)
	_ = Apply(ls, Criteria{MinPrice: listing.NumberOf(3)})
	if !reflect.DeepEqual(ids(ls), before) {
		t.Error("input was reordered")
	}
}

func TestApply_ANDSemantics(t *testing.T) {
	l := listing.Listing{ID: "a", Price: listing.NumberOf(2_000_000), Bedrooms: listing.NumberOf(3)}

	got := Apply([]listing.Listing{l}, Criteria{MinPrice: listing.NumberOf(1_000_000), Bedrooms: listing.NumberOf(2)})
	if len(got) != 0 {
		t.Error("bedrooms mismatch must exclude even when price passes")
	}

	got = Apply([]listing.Listing{l}, Criteria{MinPrice: listing.NumberOf(1_000_000), Bedrooms: listing.NumberOf(3)})
	if len(got) != 1 {
		t.Error("all criteria pass, listing must be included")
	}
}

func TestApply_LegacyRentalEquivalent(t *testing.T) {
	legacy := listing.Listing{ID: "legacy", IsRental: boolPtr(true), DirectInstallment: boolPtr(true)}
	canonical := listing.Listing{ID: "canonical", ListingType: "rent", SubListingType: "installment_only"}

	cases := []Criteria{
		{ListingType: String("rent")},
		{ListingType: String("sale")},
		{ListingType: String("rent"), SubListingType: String("installment_only")},
		{ListingType: String("rent"), SubListingType: String("rent_only")},
		{ListingType: String("rent"), PropertyCondition: String("มือ 1")},
	}
	for i, c := range cases {
		a := Matches(&legacy, c)
		b := Matches(&canonical, c)
		if a != b {
			t.Errorf("case %d: legacy=%v canonical=%v", i, a, b)
		}
	}
	if !Matches(&legacy, cases[0]) || Matches(&legacy, cases[1]) {
		t.Error("legacy rental must be a rental")
	}
}

func TestApply_TransactionPredicate(t *testing.T) {
	ls := []listing.Listing{
		{ID: "sale-first", ListingType: "sale", PropertyCondition: "first-hand"},
		{ID: "sale-second", ListingType: "sale", PropertySubStatus: "มือ2"},
		{ID: "rent-only", ListingType: "rent"},
		{ID: "rent-inst", ListingType: "rent", SubListingType: "installment_only"},
		{ID: "default"},
	}
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"sale", Criteria{ListingType: String("sale")}, []string{"sale-first", "sale-second", "default"}},
		{"sale second hand", Criteria{ListingType: String("sale"), PropertyCondition: String("hand 2")}, []string{"sale-second"}},
		{"sale subtype ignored", Criteria{ListingType: String("sale"), SubListingType: String("installment_only")}, []string{"sale-first", "sale-second", "default"}},
		{"rent installment", Criteria{ListingType: String("rent"), SubListingType: String("installment_only")}, []string{"rent-inst"}},
		{"rent condition ignored", Criteria{ListingType: String("rent"), PropertyCondition: String("มือ 1")}, []string{"rent-only", "rent-inst"}},
		{"blank type is no constraint", Criteria{ListingType: String("  ")}, []string{"sale-first", "sale-second", "rent-only", "rent-inst", "default"}},
		{"subtype alone is no constraint", Criteria{SubListingType: String("installment_only")}, []string{"sale-first", "sale-second", "rent-only", "rent-inst", "default"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Apply(ls, tt.c)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_Availability(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Availability: "available"},
		{ID: "b", Status: "ว่าง"},
		{ID: "c", Availability: "sold"},
		{ID: "d"},
	}
	got := ids(Apply(ls, Criteria{Availability: String("พร้อมขาย")}))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestApply_NumericCriteria(t *testing.T) {
	ls := []listing.Listing{
		{ID: "cheap", Price: listing.NumberOf(900_000), Area: listing.NumberOf(40), Bathrooms: listing.NumberOf(1)},
		{ID: "mid", Price: listing.ParseNumber("1,800,000"), Area: listing.NumberOf(120), Bathrooms: listing.NumberOf(2)},
		{ID: "dear", Price: listing.NumberOf(2_500_000), Area: listing.NumberOf(80), Bathrooms: listing.NumberOf(2)},
		{ID: "broken", Price: listing.ParseNumber("call us"), Area: listing.ParseNumber("big")},
		{ID: "missing"},
	}
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"inclusive bounds", Criteria{MinPrice: listing.NumberOf(900_000), MaxPrice: listing.NumberOf(1_800_000)}, []string{"cheap", "mid"}},
		{"max only", Criteria{MaxPrice: listing.NumberOf(1_000_000)}, []string{"cheap"}},
		{"area range", Criteria{MinArea: listing.NumberOf(50), MaxArea: listing.NumberOf(100)}, []string{"dear"}},
		{"bathrooms equality", Criteria{Bathrooms: listing.NumberOf(2)}, []string{"mid", "dear"}},
		{"malformed bound matches nothing", Criteria{MinPrice: listing.ParseNumber("lots")}, []string{}},
		{"malformed bedrooms matches nothing", Criteria{Bedrooms: listing.ParseNumber("three")}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Apply(ls, tt.c)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_LocationAndType(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Type: "condo", Location: listing.Location{District: "บางนา"}},
		{ID: "b", Type: "house", LocationDisplay: "Bangna, Bangkok"},
		{ID: "c", Type: "condo", NearbyPlaces: listing.StringTags("Central Bangna")},
	}
	if got := ids(Apply(ls, Criteria{Location: String("bangna")})); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("location: got %v", got)
	}
	if got := ids(Apply(ls, Criteria{PropertyType: String("condo")})); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("type: got %v", got)
	}
	if got := ids(Apply(ls, Criteria{PropertyType: String("Condo")})); len(got) != 0 {
		t.Errorf("type is exact, got %v", got)
	}
}

func TestApply_KeywordTokensAND(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Title: "Condo near BTS", Description: "pool"},
		{ID: "b", Title: "Condo riverside"},
	}
	if got := ids(Apply(ls, Criteria{Keyword: String("condo pool")})); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("got %v", got)
	}
}

func TestApply_KeywordPricePhrase(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Title: "Townhouse Bangna", Price: listing.NumberOf(1_800_000)},
		{ID: "b", Title: "Townhouse Rangsit", Price: listing.NumberOf(2_500_000)},
		{ID: "c", Title: "Condo Bangna", Price: listing.NumberOf(1_500_000)},
	}

	got := ids(Apply(ls, Criteria{Keyword: String("townhouse under 2 million")}))
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("parsed max: got %v", got)
	}

	// An explicit bound wins over the one read from the keyword.
	got = ids(Apply(ls, Criteria{Keyword: String("townhouse under 2 million"), MaxPrice: listing.NumberOf(3_000_000)}))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("explicit max: got %v", got)
	}

	got = ids(Apply(ls, Criteria{Keyword: String("1-2 ล้าน")}))
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("range only: got %v", got)
	}
}

func TestApply_EndToEndConditionMarker(t *testing.T) {
	ls := []listing.Listing{
		{ID: "a", Title: "Townhouse near industrial estate", Price: listing.NumberOf(1_800_000),
			Tags: listing.StringTags("installment"), PropertyCondition: "second-hand"},
		{ID: "b", Title: "Condo city center", Price: listing.NumberOf(2_500_000), PropertyCondition: "first-hand"},
		{ID: "c", Title: "House hand 2 cheap", Price: listing.NumberOf(900_000), PropertyCondition: "second-hand"},
	}
	got := ids(Apply(ls, Criteria{Keyword: String("hand 2")}))
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("got %v", got)
	}
}

func TestCriteria_IsEmptyAndMalformed(t *testing.T) {
	c := Criteria{Keyword: String("  "), Location: nil}
	if !c.IsEmpty() {
		t.Error("blank strings are no constraint")
	}
	c.Bedrooms = listing.ParseNumber("two")
	if c.IsEmpty() {
		t.Error("a supplied number is a constraint")
	}
	c.MaxPrice = listing.NumberOf(5)
	if got := c.Malformed(); !reflect.DeepEqual(got, []string{"bedrooms"}) {
		t.Errorf("malformed: got %v", got)
	}
}
