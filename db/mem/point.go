package mem

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	dbt "github.com/Psy1ALise/travel-planner-public/db/db"
)

// CreateTripPoint appends a point to its trip. The owning trip must exist;
// a point never exists without one.
func (db *inMemoryPlannerDBWrapper) CreateTripPoint(point *dbt.TripPoint) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.trips[point.TripID]; !exists {
		return fmt.Errorf("trip %s: %w", point.TripID, dbt.ErrNotFound)
	}

	pointCopy := *point
	pointCopy.Date = dbt.TruncateToDay(point.Date)
	if point.Location != nil {
		loc := *point.Location
		pointCopy.Location = &loc
	}
	db.points[point.TripID] = append(db.points[point.TripID], pointCopy)
	return nil
}

// GetTripPoint retrieves a point by ID.
func (db *inMemoryPlannerDBWrapper) GetTripPoint(id uuid.UUID) (*dbt.TripPoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, points := range db.points {
		for i := range points {
			if points[i].ID == id {
				return copyPoint(&points[i]), nil
			}
		}
	}
	return nil, fmt.Errorf("trip point %s: %w", id, dbt.ErrNotFound)
}

// UpdateTripPoint replaces every mutable field of an existing point. The last
// committed update wins; there is no conflict detection between concurrent
// writers of the same row.
func (db *inMemoryPlannerDBWrapper) UpdateTripPoint(point *dbt.TripPoint) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for tripID, points := range db.points {
		for i := range points {
			if points[i].ID == point.ID {
				updated := *point
				updated.TripID = tripID // owning trip is write-once
				updated.Date = dbt.TruncateToDay(point.Date)
				updated.CreatedAt = points[i].CreatedAt
				if point.Location != nil {
					loc := *point.Location
					updated.Location = &loc
				}
				points[i] = updated
				return nil
			}
		}
	}
	return fmt.Errorf("trip point %s: %w", point.ID, dbt.ErrNotFound)
}

// DeleteTripPoint removes a single point.
func (db *inMemoryPlannerDBWrapper) DeleteTripPoint(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for tripID, points := range db.points {
		for i := range points {
			if points[i].ID == id {
				db.points[tripID] = append(points[:i], points[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("trip point %s: %w", id, dbt.ErrNotFound)
}

// DeleteTripPoints removes every point of a trip. Deleting zero points is not
// an error; the call is the first half of the trip deletion sequence.
func (db *inMemoryPlannerDBWrapper) DeleteTripPoints(tripID uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.points[tripID] = nil
	return nil
}

// GetTripPoints returns all points of a trip ordered by ascending date. Ties
// keep storage (insertion) order; visit order is not a sort key here.
func (db *inMemoryPlannerDBWrapper) GetTripPoints(tripID uuid.UUID) ([]dbt.TripPoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	points := copyPoints(db.points[tripID])
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// GetTripPointsByDay returns a trip's points for one calendar date in storage
// order.
func (db *inMemoryPlannerDBWrapper) GetTripPointsByDay(tripID uuid.UUID, date time.Time) ([]dbt.TripPoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []dbt.TripPoint
	for i := range db.points[tripID] {
		if dbt.SameDay(db.points[tripID][i].Date, date) {
			result = append(result, *copyPoint(&db.points[tripID][i]))
		}
	}
	return result, nil
}

// GetTripPointsByType returns a trip's points matching a point type, in
// storage order.
func (db *inMemoryPlannerDBWrapper) GetTripPointsByType(tripID uuid.UUID, pointType dbt.PointType) ([]dbt.TripPoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []dbt.TripPoint
	for i := range db.points[tripID] {
		if db.points[tripID][i].PointType == pointType {
			result = append(result, *copyPoint(&db.points[tripID][i]))
		}
	}
	return result, nil
}

// GetPointsByDay returns every point across all trips scheduled on a date,
// ordered by trip ID first and visit order second. This is the one query
// where visit order is honored as a sort key.
func (db *inMemoryPlannerDBWrapper) GetPointsByDay(date time.Time) ([]dbt.TripPoint, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var result []dbt.TripPoint
	for _, points := range db.points {
		for i := range points {
			if dbt.SameDay(points[i].Date, date) {
				result = append(result, *copyPoint(&points[i]))
			}
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TripID != result[j].TripID {
			return bytes.Compare(result[i].TripID[:], result[j].TripID[:]) < 0
		}
		return result[i].VisitOrder < result[j].VisitOrder
	})
	return result, nil
}

func copyPoint(p *dbt.TripPoint) *dbt.TripPoint {
	pointCopy := *p
	if p.Location != nil {
		loc := *p.Location
		pointCopy.Location = &loc
	}
	return &pointCopy
}

func copyPoints(points []dbt.TripPoint) []dbt.TripPoint {
	result := make([]dbt.TripPoint, 0, len(points))
	for i := range points {
		result = append(result, *copyPoint(&points[i]))
	}
	return result
}
