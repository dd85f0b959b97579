package repository

import (
	"fmt"
	"strings"
	"time"
)

// ListingFilter captures search parameters shared by both listing kinds.
// A nil/empty field means "no filter".
type ListingFilter struct {
	OwnerID     *string
	SearchTerm  string
	VehicleType string
	Status      string
	CreatedFrom *time.Time
	Limit       int
	Offset      int
}

// MonthCount is one (year, month) aggregation bucket.
type MonthCount struct {
	Year  int
	Month int
	Count int64
}

// CityCount is one destination-city aggregation bucket.
type CityCount struct {
	City  string
	Count int64
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search terms.
// Backslash is the Postgres default escape character, so no ESCAPE clause is
// needed in the query.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListingClauses compiles a ListingFilter into WHERE clauses and args.
// searchColumns are OR-combined for the case-insensitive substring match.
func buildListingClauses(filter ListingFilter, typeColumn string, searchColumns []string) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.VehicleType != "" {
		args = append(args, filter.VehicleType)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", typeColumn, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		// A literal % or _ in the term must not act as a wildcard.
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(term))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		parts := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder))
		}
		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}

	return clauses, args
}

func limitOffset(filter ListingFilter) (int, int) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
