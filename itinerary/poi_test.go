package itinerary_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/db/mem"
	"github.com/Psy1ALise/travel-planner-public/itinerary"
)

func TestPOIServiceLifecycle(t *testing.T) {
	service := itinerary.NewPOIService(mem.NewInMemoryPlannerDBWrapper())

	poi, err := service.Create(&dbt.POI{
		Name:     "Bellapais Abbey",
		Location: dbt.GeoPoint{Lon: 33.3553, Lat: 35.3058},
		POIType:  dbt.POITypeAttraction,
	})
	require.NoError(t, err)
	assert.Equal(t, dbt.POIStateActive, poi.State)

	retrieved, err := service.GetActiveByID(poi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bellapais Abbey", retrieved.Name)

	require.NoError(t, service.SoftDelete(poi.ID))

	_, err = service.GetActiveByID(poi.ID)
	assert.ErrorIs(t, err, dbt.ErrNotFound)

	// Retiring twice stays silent.
	assert.NoError(t, service.SoftDelete(poi.ID))
	assert.NoError(t, service.SoftDelete(uuid.New()))
}

func TestPOIServiceQueries(t *testing.T) {
	service := itinerary.NewPOIService(mem.NewInMemoryPlannerDBWrapper())

	castle, err := service.Create(&dbt.POI{
		Name:     "Kyrenia Castle",
		Location: dbt.GeoPoint{Lon: 33.3203, Lat: 35.3417},
		POIType:  dbt.POITypeAttraction,
	})
	require.NoError(t, err)
	_, err = service.Create(&dbt.POI{
		Name:     "Niazi's",
		Location: dbt.GeoPoint{Lon: 33.3181, Lat: 35.3389},
		POIType:  dbt.POITypeRestaurant,
	})
	require.NoError(t, err)

	all, err := service.ListActive()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	attractions, err := service.ListActiveByType(dbt.POITypeAttraction)
	require.NoError(t, err)
	require.Len(t, attractions, 1)
	assert.Equal(t, castle.ID, attractions[0].ID)

	nearby, err := service.Nearby(35.3417, 33.3203, 500)
	require.NoError(t, err)
	require.NotEmpty(t, nearby)
	assert.Equal(t, castle.ID, nearby[0].ID)
}
