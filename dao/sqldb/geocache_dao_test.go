package sqldb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-finder/db/dbtest"
	"geocache-finder/models"
)

func searchFixtures(t *testing.T, f GeocacheFilter) ([]models.GeocacheRecord, error) {
	t.Helper()
	store := dbtest.NewSQLiteStore(t, dbtest.Fixtures)
	conn, err := store.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	return NewGeocacheDAO(SqliteDialect).Search(context.Background(), conn, f)
}

func ids(records []models.GeocacheRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestGeocacheDAO_Search_TypeAndDifficulty(t *testing.T) {
	records, err := searchFixtures(t, GeocacheFilter{Box: tucson, CacheType: "1", Difficulty: "2"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, 32.25, r.Latitude)
	assert.Equal(t, -110.91, r.Longitude)
	assert.Equal(t, "Traditional", r.CacheType)
	assert.Equal(t, "2", r.Difficulty())
	assert.Equal(t, "Saguaro Stash", r.Columns["name"])
}

func TestGeocacheDAO_Search_NoMatchIsEmpty(t *testing.T) {
	records, err := searchFixtures(t, GeocacheFilter{Box: tucson, CacheType: "1", Difficulty: "5"})

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGeocacheDAO_Search_Filters(t *testing.T) {
	tests := []struct {
		name     string
		filter   GeocacheFilter
		expected []int64
	}{
		{"box only", GeocacheFilter{Box: tucson}, []int64{1, 2, 3, 4}},
		{"type", GeocacheFilter{Box: tucson, CacheType: "1"}, []int64{1, 3}},
		{"difficulty", GeocacheFilter{Box: tucson, Difficulty: "3"}, []int64{2, 3}},
		{"type and difficulty", GeocacheFilter{Box: tucson, CacheType: "1", Difficulty: "3"}, []int64{3}},
		{"difficulty as decimal", GeocacheFilter{Box: tucson, Difficulty: "2.0"}, []int64{1, 4}},
		{"whole globe", GeocacheFilter{Box: models.GeoBoundingBox{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}}, []int64{1, 2, 3, 4, 5}},
		{"degenerate box on a cache", GeocacheFilter{Box: models.GeoBoundingBox{MinLat: 32.25, MaxLat: 32.25, MinLng: -110.91, MaxLng: -110.91}}, []int64{1}},
		{"empty area", GeocacheFilter{Box: models.GeoBoundingBox{MinLat: -10, MaxLat: -5, MinLng: 10, MaxLng: 20}}, []int64{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records, err := searchFixtures(t, test.filter)

			require.NoError(t, err)
			assert.Equal(t, test.expected, ids(records))
		})
	}
}

func TestGeocacheDAO_Search_LabelsEveryRecord(t *testing.T) {
	records, err := searchFixtures(t, GeocacheFilter{Box: models.GeoBoundingBox{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}})

	require.NoError(t, err)
	require.Len(t, records, len(dbtest.Fixtures))
	for i, r := range records {
		fixture := dbtest.Fixtures[i]
		assert.Equal(t, dbtest.CacheTypes[fixture.TypeID], r.CacheType)
		assert.Equal(t, fixture.TypeID, r.CacheTypeID)
		assert.Equal(t, fixture.ID, r.ID)
	}
}

func TestGeocacheDAO_Search_InjectionIsData(t *testing.T) {
	records, err := searchFixtures(t, GeocacheFilter{Box: tucson, CacheType: "1 OR 1=1"})

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGeocacheDAO_Search_QueryError(t *testing.T) {
	store := dbtest.NewSQLiteStore(t, dbtest.Fixtures)
	_, err := store.DB().Exec(`DROP TABLE cache_types`)
	require.NoError(t, err)

	conn, err := store.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	_, err = NewGeocacheDAO(SqliteDialect).Search(context.Background(), conn, GeocacheFilter{Box: tucson})

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Contains(t, err.Error(), "geocache query failed")
}

func TestGeocacheDAO_Search_PassesStoredValuesThrough(t *testing.T) {
	store := dbtest.NewSQLiteStore(t, nil)
	for _, stmt := range []string{
		`DROP TABLE test_data`,
		`CREATE TABLE test_data (id TEXT PRIMARY KEY, latitude REAL, longitude REAL, difficulty_rating TEXT, cache_type_id INTEGER)`,
		`INSERT INTO test_data VALUES ('GC1A2B', 32.25, -110.91, 'Easy', 1)`,
	} {
		_, err := store.DB().Exec(stmt)
		require.NoError(t, err)
	}
	conn, err := store.Acquire(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	records, err := NewGeocacheDAO(SqliteDialect).Search(context.Background(), conn, GeocacheFilter{Box: tucson, Difficulty: "Easy"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Easy", records[0].Difficulty())

	body, err := json.Marshal(records)
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "GC1A2B", got[0]["id"])
	assert.Equal(t, "Easy", got[0]["difficulty_rating"])
	assert.Equal(t, float64(1), got[0]["cache_type_id"])
	assert.Equal(t, "Traditional", got[0]["cache_type"])
	assert.Equal(t, 32.25, got[0]["latitude"])
}
