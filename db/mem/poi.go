package mem

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// CreatePOI persists a new POI. A freshly created POI is always active.
func (db *inMemoryPlannerDBWrapper) CreatePOI(poi *dbt.POI) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.pois[poi.ID]; exists {
		return fmt.Errorf("POI with ID %s already exists", poi.ID)
	}

	poiCopy := *poi
	poiCopy.State = dbt.POIStateActive
	poiCopy.DeletedAt = nil
	db.pois[poi.ID] = &poiCopy
	db.poiOrder = append(db.poiOrder, poi.ID)
	return nil
}

// GetActivePOI retrieves a POI by ID. Retired POIs are reported as not found.
func (db *inMemoryPlannerDBWrapper) GetActivePOI(id uuid.UUID) (*dbt.POI, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	poi, exists := db.pois[id]
	if !exists || !poi.Active() {
		return nil, fmt.Errorf("POI %s: %w", id, dbt.ErrNotFound)
	}
	poiCopy := *poi
	return &poiCopy, nil
}

// GetActivePOIs returns all active POIs in storage order.
func (db *inMemoryPlannerDBWrapper) GetActivePOIs() ([]dbt.POI, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []dbt.POI
	for _, id := range db.poiOrder {
		if poi := db.pois[id]; poi != nil && poi.Active() {
			result = append(result, *poi)
		}
	}
	return result, nil
}

// GetActivePOIsByType returns active POIs matching a type, in storage order.
func (db *inMemoryPlannerDBWrapper) GetActivePOIsByType(poiType dbt.POIType) ([]dbt.POI, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []dbt.POI
	for _, id := range db.poiOrder {
		if poi := db.pois[id]; poi != nil && poi.Active() && poi.POIType == poiType {
			result = append(result, *poi)
		}
	}
	return result, nil
}

// GetNearbyPOIs returns active POIs within radiusMeters great-circle distance
// of (lat, lng). The boundary is inclusive: a POI at exactly radiusMeters is
// part of the result. A radius of 0 matches only coincident points.
func (db *inMemoryPlannerDBWrapper) GetNearbyPOIs(lat float64, lng float64, radiusMeters float64) ([]dbt.POI, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	center := dbt.GeoPoint{Lon: lng, Lat: lat}
	var result []dbt.POI
	for _, id := range db.poiOrder {
		poi := db.pois[id]
		if poi == nil || !poi.Active() {
			continue
		}
		if poi.Location.DistanceMeters(center) <= radiusMeters {
			result = append(result, *poi)
		}
	}
	return result, nil
}

// SoftDeletePOI retires a POI and stamps the deletion time. The call is
// idempotent and a silent no-op when the ID does not exist; the row is never
// physically removed so historical references stay valid.
func (db *inMemoryPlannerDBWrapper) SoftDeletePOI(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	poi, exists := db.pois[id]
	if !exists || !poi.Active() {
		return nil
	}
	now := time.Now().UTC()
	poi.State = dbt.POIStateRetired
	poi.DeletedAt = &now
	return nil
}
