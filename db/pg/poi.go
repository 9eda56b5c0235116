package pg

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

type poiRow struct {
	ID        uuid.UUID
	Name      string
	POIType   string
	Category  string
	Notes     string
	State     string
	DeletedAt *time.Time
	CreatedAt time.Time
	Lon       float64
	Lat       float64
}

const poiColumns = `
	id, name, poi_type, category, notes, state, deleted_at, created_at,
	ST_X(location::geometry) AS lon,
	ST_Y(location::geometry) AS lat`

// CreatePOI inserts a new POI with an active lifecycle state.
func (pgdb *GORMPlannerDBWrapper) CreatePOI(poi *dbt.POI) error {
	result := pgdb.db.Exec(`
		INSERT INTO poi (
			id, name, location, poi_type, category, notes, state,
			created_at, updated_at
		) VALUES (
			?, ?, ST_SetSRID(ST_MakePoint(?, ?), 4326), ?, ?, ?, ?, NOW(), NOW()
		)`,
		poi.ID, poi.Name, poi.Location.Lon, poi.Location.Lat,
		string(poi.POIType), poi.Category, poi.Notes, string(dbt.POIStateActive),
	)
	if result.Error != nil {
		return fmt.Errorf("failed to create POI: %w", result.Error)
	}
	return nil
}

// GetActivePOI retrieves an active POI by ID. Retired rows are reported as
// not found, same as missing ones.
func (pgdb *GORMPlannerDBWrapper) GetActivePOI(id uuid.UUID) (*dbt.POI, error) {
	var rows []poiRow
	result := pgdb.db.Raw(`
		SELECT `+poiColumns+`
		FROM poi WHERE id = ? AND state = ?`, id, string(dbt.POIStateActive)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get POI %s: %w", id, result.Error)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("POI %s: %w", id, dbt.ErrNotFound)
	}
	poi := poiFromRow(&rows[0])
	return &poi, nil
}

// GetActivePOIs returns all active POIs.
func (pgdb *GORMPlannerDBWrapper) GetActivePOIs() ([]dbt.POI, error) {
	var rows []poiRow
	result := pgdb.db.Raw(`
		SELECT `+poiColumns+`
		FROM poi WHERE state = ?`, string(dbt.POIStateActive)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get active POIs: %w", result.Error)
	}
	return poisFromRows(rows), nil
}

// GetActivePOIsByType returns active POIs matching a type.
func (pgdb *GORMPlannerDBWrapper) GetActivePOIsByType(poiType dbt.POIType) ([]dbt.POI, error) {
	var rows []poiRow
	result := pgdb.db.Raw(`
		SELECT `+poiColumns+`
		FROM poi WHERE poi_type = ? AND state = ?`,
		string(poiType), string(dbt.POIStateActive)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get POIs of type %s: %w", poiType, result.Error)
	}
	return poisFromRows(rows), nil
}

// GetNearbyPOIs returns active POIs within radiusMeters of (lat, lng).
// ST_DWithin over geography measures great-circle meters and is inclusive at
// the boundary.
func (pgdb *GORMPlannerDBWrapper) GetNearbyPOIs(lat float64, lng float64, radiusMeters float64) ([]dbt.POI, error) {
	var rows []poiRow
	result := pgdb.db.Raw(`
		SELECT `+poiColumns+`
		FROM poi
		WHERE state = ?
		AND ST_DWithin(
			location::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
			?
		)`, string(dbt.POIStateActive), lng, lat, radiusMeters).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get nearby POIs: %w", result.Error)
	}
	return poisFromRows(rows), nil
}

// SoftDeletePOI retires a POI and stamps the deletion time. Missing or
// already retired rows are a silent no-op.
func (pgdb *GORMPlannerDBWrapper) SoftDeletePOI(id uuid.UUID) error {
	result := pgdb.db.Exec(`
		UPDATE poi SET state = ?, deleted_at = NOW(), updated_at = NOW()
		WHERE id = ? AND state = ?`,
		string(dbt.POIStateRetired), id, string(dbt.POIStateActive))
	if result.Error != nil {
		return fmt.Errorf("failed to soft delete POI %s: %w", id, result.Error)
	}
	return nil
}

func poiFromRow(r *poiRow) dbt.POI {
	return dbt.POI{
		ID:        r.ID,
		Name:      r.Name,
		Location:  dbt.GeoPoint{Lon: r.Lon, Lat: r.Lat},
		POIType:   dbt.POIType(r.POIType),
		Category:  r.Category,
		Notes:     r.Notes,
		State:     dbt.POIState(r.State),
		CreatedAt: r.CreatedAt,
		DeletedAt: r.DeletedAt,
	}
}

func poisFromRows(rows []poiRow) []dbt.POI {
	var pois []dbt.POI
	for i := range rows {
		pois = append(pois, poiFromRow(&rows[i]))
	}
	return pois
}
