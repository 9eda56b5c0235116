package pg

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// tripPointRow is the scan target for trip point selects. The geometry column
// is projected to lon/lat via ST_X/ST_Y so no PostGIS type mapping is needed
// on the Go side.
type tripPointRow struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	Name            string
	Date            time.Time
	VisitOrder      int
	PointType       string
	PlannedDuration int
	PlannedTime     string
	Notes           string
	LocationName    string
	CreatedAt       time.Time
	HasLocation     bool
	Lon             float64
	Lat             float64
}

const tripPointColumns = `
	id, trip_id, name, date, visit_order, point_type, planned_duration,
	planned_time, notes, location_name, created_at,
	(location IS NOT NULL) AS has_location,
	COALESCE(ST_X(location::geometry), 0) AS lon,
	COALESCE(ST_Y(location::geometry), 0) AS lat`

// CreateTripPoint inserts a point. A missing owning trip surfaces as a
// foreign key violation and is reported as not found.
func (pgdb *GORMPlannerDBWrapper) CreateTripPoint(point *dbt.TripPoint) error {
	hasLoc, lon, lat := splitLocation(point.Location)
	result := pgdb.db.Exec(`
		INSERT INTO trip_points (
			id, trip_id, name, date, visit_order, point_type, planned_duration,
			planned_time, notes, location_name, location, created_at, updated_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			CASE WHEN ? THEN ST_SetSRID(ST_MakePoint(?, ?), 4326) END,
			NOW(), NOW()
		)`,
		point.ID, point.TripID, point.Name, dbt.TruncateToDay(point.Date),
		point.VisitOrder, string(point.PointType), point.PlannedDuration,
		point.PlannedTime, point.Notes, point.LocationName,
		hasLoc, lon, lat,
	)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "violates foreign key constraint") {
			return fmt.Errorf("trip %s: %w", point.TripID, dbt.ErrNotFound)
		}
		return fmt.Errorf("failed to create trip point: %w", result.Error)
	}
	return nil
}

// GetTripPoint retrieves a point by ID.
func (pgdb *GORMPlannerDBWrapper) GetTripPoint(id uuid.UUID) (*dbt.TripPoint, error) {
	var rows []tripPointRow
	result := pgdb.db.Raw(`SELECT `+tripPointColumns+` FROM trip_points WHERE id = ?`, id).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trip point %s: %w", id, result.Error)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trip point %s: %w", id, dbt.ErrNotFound)
	}
	point := pointFromRow(&rows[0])
	return &point, nil
}

// UpdateTripPoint replaces every mutable field of an existing point. The
// owning trip and creation timestamp are left untouched.
func (pgdb *GORMPlannerDBWrapper) UpdateTripPoint(point *dbt.TripPoint) error {
	hasLoc, lon, lat := splitLocation(point.Location)
	result := pgdb.db.Exec(`
		UPDATE trip_points SET
			name = ?, date = ?, visit_order = ?, point_type = ?,
			planned_duration = ?, planned_time = ?, notes = ?, location_name = ?,
			location = CASE WHEN ? THEN ST_SetSRID(ST_MakePoint(?, ?), 4326) END,
			updated_at = NOW()
		WHERE id = ?`,
		point.Name, dbt.TruncateToDay(point.Date), point.VisitOrder,
		string(point.PointType), point.PlannedDuration, point.PlannedTime,
		point.Notes, point.LocationName,
		hasLoc, lon, lat,
		point.ID,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to update trip point %s: %w", point.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trip point %s: %w", point.ID, dbt.ErrNotFound)
	}
	return nil
}

// DeleteTripPoint deletes a single point.
func (pgdb *GORMPlannerDBWrapper) DeleteTripPoint(id uuid.UUID) error {
	result := pgdb.db.Exec(`DELETE FROM trip_points WHERE id = ?`, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete trip point %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trip point %s: %w", id, dbt.ErrNotFound)
	}
	return nil
}

// DeleteTripPoints deletes every point of a trip. Zero affected rows is fine;
// this runs before the trip row itself is removed.
func (pgdb *GORMPlannerDBWrapper) DeleteTripPoints(tripID uuid.UUID) error {
	result := pgdb.db.Exec(`DELETE FROM trip_points WHERE trip_id = ?`, tripID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete trip points for trip %s: %w", tripID, result.Error)
	}
	return nil
}

// GetTripPoints returns all points of a trip ordered by ascending date. Ties
// are left in storage order; visit order is not a sort key on this path.
func (pgdb *GORMPlannerDBWrapper) GetTripPoints(tripID uuid.UUID) ([]dbt.TripPoint, error) {
	var rows []tripPointRow
	result := pgdb.db.Raw(`
		SELECT `+tripPointColumns+`
		FROM trip_points WHERE trip_id = ? ORDER BY date ASC`, tripID).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trip points for trip %s: %w", tripID, result.Error)
	}
	return pointsFromRows(rows), nil
}

// GetTripPointsByDay returns one trip's points on one calendar date.
func (pgdb *GORMPlannerDBWrapper) GetTripPointsByDay(tripID uuid.UUID, date time.Time) ([]dbt.TripPoint, error) {
	var rows []tripPointRow
	result := pgdb.db.Raw(`
		SELECT `+tripPointColumns+`
		FROM trip_points WHERE trip_id = ? AND date = ?`, tripID, dbt.TruncateToDay(date)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trip points for trip %s on %s: %w",
			tripID, dbt.TruncateToDay(date).Format(time.DateOnly), result.Error)
	}
	return pointsFromRows(rows), nil
}

// GetTripPointsByType returns one trip's points matching a point type.
func (pgdb *GORMPlannerDBWrapper) GetTripPointsByType(tripID uuid.UUID, pointType dbt.PointType) ([]dbt.TripPoint, error) {
	var rows []tripPointRow
	result := pgdb.db.Raw(`
		SELECT `+tripPointColumns+`
		FROM trip_points WHERE trip_id = ? AND point_type = ?`, tripID, string(pointType)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trip points by type for trip %s: %w", tripID, result.Error)
	}
	return pointsFromRows(rows), nil
}

// GetPointsByDay returns every point across all trips on a date, ordered by
// trip ID then visit order ascending.
func (pgdb *GORMPlannerDBWrapper) GetPointsByDay(date time.Time) ([]dbt.TripPoint, error) {
	var rows []tripPointRow
	result := pgdb.db.Raw(`
		SELECT `+tripPointColumns+`
		FROM trip_points WHERE date = ? ORDER BY trip_id, visit_order`, dbt.TruncateToDay(date)).Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get trip points on %s: %w",
			dbt.TruncateToDay(date).Format(time.DateOnly), result.Error)
	}
	return pointsFromRows(rows), nil
}

func splitLocation(loc *dbt.GeoPoint) (bool, float64, float64) {
	if loc == nil {
		return false, 0, 0
	}
	return true, loc.Lon, loc.Lat
}

func pointFromRow(r *tripPointRow) dbt.TripPoint {
	point := dbt.TripPoint{
		ID:              r.ID,
		TripID:          r.TripID,
		Name:            r.Name,
		Date:            dbt.TruncateToDay(r.Date),
		VisitOrder:      r.VisitOrder,
		PointType:       dbt.PointType(r.PointType),
		PlannedDuration: r.PlannedDuration,
		PlannedTime:     r.PlannedTime,
		Notes:           r.Notes,
		LocationName:    r.LocationName,
		CreatedAt:       r.CreatedAt,
	}
	if r.HasLocation {
		point.Location = &dbt.GeoPoint{Lon: r.Lon, Lat: r.Lat}
	}
	return point
}

func pointsFromRows(rows []tripPointRow) []dbt.TripPoint {
	var points []dbt.TripPoint
	for i := range rows {
		points = append(points, pointFromRow(&rows[i]))
	}
	return points
}
