package mem_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

func makePOI(name string, lon, lat float64) *dbt.POI {
	return &dbt.POI{
		ID:       uuid.New(),
		Name:     name,
		Location: dbt.GeoPoint{Lon: lon, Lat: lat},
		POIType:  dbt.POITypeAttraction,
	}
}

func TestCreatePOIAlwaysActive(t *testing.T) {
	db := setupTest()

	poi := makePOI("Kyrenia Castle", 33.3203, 35.3417)
	poi.State = dbt.POIStateRetired // ignored on create
	require.NoError(t, db.CreatePOI(poi))

	retrieved, err := db.GetActivePOI(poi.ID)
	require.NoError(t, err)
	assert.Equal(t, dbt.POIStateActive, retrieved.State)
	assert.Nil(t, retrieved.DeletedAt)
}

func TestGetActivePOINotFound(t *testing.T) {
	db := setupTest()

	poi, err := db.GetActivePOI(uuid.New())
	assert.Nil(t, poi)
	assert.ErrorIs(t, err, dbt.ErrNotFound)
}

func TestSoftDeletePOI(t *testing.T) {
	db := setupTest()

	poi := makePOI("Old Harbour", 33.3190, 35.3410)
	require.NoError(t, db.CreatePOI(poi))
	require.NoError(t, db.SoftDeletePOI(poi.ID))

	// Retired POIs look like missing ones to active lookups.
	_, err := db.GetActivePOI(poi.ID)
	assert.ErrorIs(t, err, dbt.ErrNotFound)

	// Second delete and unknown ids are silent no-ops.
	assert.NoError(t, db.SoftDeletePOI(poi.ID))
	assert.NoError(t, db.SoftDeletePOI(uuid.New()))
}

func TestGetActivePOIsExcludesRetired(t *testing.T) {
	db := setupTest()

	kept := makePOI("Kept", 33.0, 35.0)
	retired := makePOI("Retired", 33.1, 35.1)
	require.NoError(t, db.CreatePOI(kept))
	require.NoError(t, db.CreatePOI(retired))
	require.NoError(t, db.SoftDeletePOI(retired.ID))

	pois, err := db.GetActivePOIs()
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, kept.ID, pois[0].ID)
}

func TestGetActivePOIsByType(t *testing.T) {
	db := setupTest()

	attraction := makePOI("Castle", 33.0, 35.0)
	restaurant := makePOI("Meyhane", 33.1, 35.1)
	restaurant.POIType = dbt.POITypeRestaurant
	require.NoError(t, db.CreatePOI(attraction))
	require.NoError(t, db.CreatePOI(restaurant))

	pois, err := db.GetActivePOIsByType(dbt.POITypeRestaurant)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, restaurant.ID, pois[0].ID)
}

func TestGetNearbyPOIs(t *testing.T) {
	db := setupTest()

	center := makePOI("Center", 33.3823, 35.1856)
	near := makePOI("Near", 33.3843, 35.1856) // a few hundred meters east
	far := makePOI("Far", 33.6201, 34.9229)   // tens of kilometers away
	retired := makePOI("Retired", 33.3823, 35.1856)
	require.NoError(t, db.CreatePOI(center))
	require.NoError(t, db.CreatePOI(near))
	require.NoError(t, db.CreatePOI(far))
	require.NoError(t, db.CreatePOI(retired))
	require.NoError(t, db.SoftDeletePOI(retired.ID))

	pois, err := db.GetNearbyPOIs(35.1856, 33.3823, 1000)
	require.NoError(t, err)
	require.Len(t, pois, 2, "far and retired POIs are excluded")
	assert.Equal(t, center.ID, pois[0].ID)
	assert.Equal(t, near.ID, pois[1].ID)
}

func TestGetNearbyPOIsBoundaryInclusive(t *testing.T) {
	db := setupTest()

	center := dbt.GeoPoint{Lon: 33.3823, Lat: 35.1856}
	edge := makePOI("Edge", 33.3843, 35.1856)
	require.NoError(t, db.CreatePOI(edge))

	exact := edge.Location.DistanceMeters(center)

	pois, err := db.GetNearbyPOIs(center.Lat, center.Lon, exact)
	require.NoError(t, err)
	assert.Len(t, pois, 1, "a POI at exactly the radius is included")

	pois, err = db.GetNearbyPOIs(center.Lat, center.Lon, exact-1)
	require.NoError(t, err)
	assert.Empty(t, pois)
}

func TestGetNearbyPOIsRadiusZero(t *testing.T) {
	db := setupTest()

	coincident := makePOI("Here", 33.3823, 35.1856)
	elsewhere := makePOI("There", 33.3824, 35.1856)
	require.NoError(t, db.CreatePOI(coincident))
	require.NoError(t, db.CreatePOI(elsewhere))

	pois, err := db.GetNearbyPOIs(35.1856, 33.3823, 0)
	require.NoError(t, err)
	require.Len(t, pois, 1, "radius 0 matches only coincident points")
	assert.Equal(t, coincident.ID, pois[0].ID)
}
