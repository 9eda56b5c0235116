package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// DataLoaderGetPOIList batch-loads POIs by ID regardless of lifecycle state;
// historical accommodation and point references must keep resolving after a
// soft delete.
func (pgdb *GORMPlannerDBWrapper) DataLoaderGetPOIList(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*dbt.POI, error) {
	var rows []poiRow
	result := pgdb.db.WithContext(ctx).Raw(`
		SELECT `+poiColumns+`
		FROM poi WHERE id IN ?`, ids).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to batch load POIs: %w", result.Error)
	}

	pois := make(map[uuid.UUID]*dbt.POI, len(rows))
	for i := range rows {
		poi := poiFromRow(&rows[i])
		pois[poi.ID] = &poi
	}
	return pois, nil
}

// DataLoaderGetTripList batch-loads trips by ID.
func (pgdb *GORMPlannerDBWrapper) DataLoaderGetTripList(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*dbt.Trip, error) {
	var tripModels []TripModel
	result := pgdb.db.WithContext(ctx).Where("id IN ?", ids).Find(&tripModels)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to batch load trips: %w", result.Error)
	}

	trips := make(map[uuid.UUID]*dbt.Trip, len(tripModels))
	for i := range tripModels {
		trip := tripFromModel(&tripModels[i])
		trips[trip.ID] = &trip
	}
	return trips, nil
}
