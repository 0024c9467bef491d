package sqldb

import (
	"fmt"
	"strconv"
	"strings"

	"geocache-finder/config"
	"geocache-finder/models"
)

// Dialect knows how a driver spells bind parameters.
type Dialect struct {
	Name        string
	Placeholder func(n int) string // n is 1-based
}

var (
	PostgresDialect = Dialect{Name: config.DB_DRIVER_POSTGRES, Placeholder: func(n int) string { return "$" + strconv.Itoa(n) }}
	SqliteDialect   = Dialect{Name: config.DB_DRIVER_SQLITE, Placeholder: func(int) string { return "?" }}
)

// DialectFor returns the dialect of a database/sql driver name.
func DialectFor(driver string) (Dialect, bool) {
	switch driver {
	case config.DB_DRIVER_POSTGRES:
		return PostgresDialect, true
	case config.DB_DRIVER_SQLITE:
		return SqliteDialect, true
	}
	return Dialect{}, false
}

// GeocacheFilter is a validated search: a box plus optional type and difficulty.
type GeocacheFilter struct {
	Box        models.GeoBoundingBox
	CacheType  models.FilterValue
	Difficulty models.FilterValue
}

// BuildGeocacheQuery returns the search statement and its arguments. The statement only
// ever contains placeholders; every value from the filter travels in args.
func BuildGeocacheQuery(d Dialect, f GeocacheFilter) (string, []any) {
	args := []any{f.Box.MinLat, f.Box.MaxLat, f.Box.MinLng, f.Box.MaxLng}

	var b strings.Builder
	b.WriteString("SELECT td.*, ct.cache_type AS cache_type\n")
	b.WriteString("FROM test_data td\n")
	b.WriteString("JOIN cache_types ct ON td.cache_type_id = ct.type_id\n")
	fmt.Fprintf(&b, "WHERE td.latitude BETWEEN %s AND %s\n", d.Placeholder(1), d.Placeholder(2))
	fmt.Fprintf(&b, "  AND td.longitude BETWEEN %s AND %s", d.Placeholder(3), d.Placeholder(4))

	if f.CacheType.IsSet() {
		args = append(args, f.CacheType.String())
		fmt.Fprintf(&b, "\n  AND td.cache_type_id = %s", d.Placeholder(len(args)))
	}
	if f.Difficulty.IsSet() {
		args = append(args, f.Difficulty.String())
		fmt.Fprintf(&b, "\n  AND td.difficulty_rating = %s", d.Placeholder(len(args)))
	}
	b.WriteString("\nORDER BY td.id")
	return b.String(), args
}
