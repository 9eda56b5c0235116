package mem

import (
	"context"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// DataLoaderGetPOIList batch-loads POIs by ID, active or retired. Historical
// references (accommodations, points) must resolve even after a soft delete.
func (db *inMemoryPlannerDBWrapper) DataLoaderGetPOIList(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*dbt.POI, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make(map[uuid.UUID]*dbt.POI, len(ids))
	for _, id := range ids {
		if poi, exists := db.pois[id]; exists {
			poiCopy := *poi
			result[id] = &poiCopy
		}
	}
	return result, nil
}

// DataLoaderGetTripList batch-loads trips by ID.
func (db *inMemoryPlannerDBWrapper) DataLoaderGetTripList(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*dbt.Trip, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make(map[uuid.UUID]*dbt.Trip, len(ids))
	for _, id := range ids {
		if trip, exists := db.trips[id]; exists {
			tripCopy := *trip
			result[id] = &tripCopy
		}
	}
	return result, nil
}
