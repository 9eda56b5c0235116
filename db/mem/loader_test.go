package mem_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataLoaderGetPOIListIncludesRetired(t *testing.T) {
	db := setupTest()

	active := makePOI("Active", 33.0, 35.0)
	retired := makePOI("Retired", 33.1, 35.1)
	require.NoError(t, db.CreatePOI(active))
	require.NoError(t, db.CreatePOI(retired))
	require.NoError(t, db.SoftDeletePOI(retired.ID))

	missing := uuid.New()
	result, err := db.DataLoaderGetPOIList(context.Background(), []uuid.UUID{active.ID, retired.ID, missing})
	require.NoError(t, err)

	assert.NotNil(t, result[active.ID])
	// Historical references must keep resolving after retirement.
	require.NotNil(t, result[retired.ID])
	assert.Equal(t, "Retired", result[retired.ID].Name)
	assert.Nil(t, result[missing])
}

func TestDataLoaderGetTripList(t *testing.T) {
	db := setupTest()

	trip := makeTrip(uuid.New(), "2025-06-01", "2025-06-03")
	require.NoError(t, db.CreateTrip(trip))

	result, err := db.DataLoaderGetTripList(context.Background(), []uuid.UUID{trip.ID})
	require.NoError(t, err)
	require.NotNil(t, result[trip.ID])
	assert.Equal(t, trip.Name, result[trip.ID].Name)
}
