package repository

import (
	"strings"
	"testing"
	"time"
)

func TestBuildListingClausesEmptyFilter(t *testing.T) {
	clauses, args := buildListingClauses(ListingFilter{}, "vehicle_type", cargoSearchColumns)
	if len(clauses) != 1 || clauses[0] != "1=1" {
		t.Errorf("empty filter clauses = %v, want just 1=1", clauses)
	}
	if len(args) != 0 {
		t.Errorf("empty filter args = %v, want none", args)
	}
}

func TestBuildListingClausesAllFields(t *testing.T) {
	owner := "owner-1"
	from := time.Now()
	filter := ListingFilter{
		OwnerID:     &owner,
		SearchTerm:  "Istanbul",
		VehicleType: "tir",
		Status:      "active",
		CreatedFrom: &from,
	}
	clauses, args := buildListingClauses(filter, "vehicle_type", cargoSearchColumns)

	where := strings.Join(clauses, " AND ")
	for _, want := range []string{"created_by=$1", "vehicle_type=$2", "status=$3", "created_at >= $4"} {
		if !strings.Contains(where, want) {
			t.Errorf("where %q missing %q", where, want)
		}
	}
	if len(args) != 5 {
		t.Fatalf("args = %d, want 5", len(args))
	}
	if args[4] != "%istanbul%" {
		t.Errorf("search arg = %v, want lowercased %%istanbul%%", args[4])
	}
	// each search column shares the one placeholder, OR-combined
	if got := strings.Count(where, "LIKE $5"); got != len(cargoSearchColumns) {
		t.Errorf("LIKE $5 occurrences = %d, want %d", got, len(cargoSearchColumns))
	}
}

func TestBuildListingClausesEscapesLikeMetacharacters(t *testing.T) {
	cases := []struct{ term, want string }{
		{"100%_dry", `%100\%\_dry%`},
		{`back\slash`, `%back\\slash%`},
		{"plain city", "%plain city%"},
	}
	for _, tc := range cases {
		_, args := buildListingClauses(ListingFilter{SearchTerm: tc.term}, "vehicle_type", cargoSearchColumns)
		if len(args) != 1 {
			t.Fatalf("term %q: args = %v, want one", tc.term, args)
		}
		if args[0] != tc.want {
			t.Errorf("term %q: arg = %q, want %q", tc.term, args[0], tc.want)
		}
	}
}

func TestLimitOffsetDefaults(t *testing.T) {
	limit, offset := limitOffset(ListingFilter{})
	if limit != 50 || offset != 0 {
		t.Errorf("defaults = (%d, %d), want (50, 0)", limit, offset)
	}
	limit, offset = limitOffset(ListingFilter{Limit: 10, Offset: -3})
	if limit != 10 || offset != 0 {
		t.Errorf("got (%d, %d), want (10, 0)", limit, offset)
	}
}
