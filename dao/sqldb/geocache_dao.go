package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"geocache-finder/db"
	"geocache-finder/logger"
	"geocache-finder/models"
)

// GeocacheDAO runs the read-only geocache search against one store connection.
type GeocacheDAO struct {
	dialect Dialect
}

// NewGeocacheDAO returns a DAO speaking the given dialect.
func NewGeocacheDAO(dialect Dialect) *GeocacheDAO {
	return &GeocacheDAO{dialect: dialect}
}

// QueryError wraps a failure reported by the store while running or reading the search.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return "geocache query failed: " + e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }

// Search returns every geocache inside the filter's box that matches its optional filters,
// in id order. All columns of test_data are kept, plus the joined cache_type label.
func (d *GeocacheDAO) Search(ctx context.Context, conn db.Conn, f GeocacheFilter) ([]models.GeocacheRecord, error) {
	query, args := BuildGeocacheQuery(d.dialect, f)
	logger.L().Debug("geocache_query", "dialect", d.dialect.Name, "args", len(args))

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer rows.Close()

	records, err := scanGeocacheRows(rows)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return records, nil
}

func scanGeocacheRows(rows *sql.Rows) ([]models.GeocacheRecord, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	records := []models.GeocacheRecord{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan geocache row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, name := range columns {
			// drivers hand back text and numeric columns as []byte
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
			} else {
				row[name] = values[i]
			}
		}
		records = append(records, models.NewGeocacheRecord(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error while iterating geocache rows: %w", err)
	}
	return records, nil
}
